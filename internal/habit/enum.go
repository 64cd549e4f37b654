package habit

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyYearly  Frequency = "Yearly"
)

var AllFrequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyYearly,
}

func (f Frequency) IsValid() bool {
	for _, v := range AllFrequencies {
		if f == v {
			return true
		}
	}
	return false
}
