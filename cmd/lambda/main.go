package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/dstasiak/habitflow/internal/container"
	"github.com/dstasiak/habitflow/internal/router"
)

var adapter *httpadapter.HandlerAdapter

func init() {
	c := container.New()

	adapter = httpadapter.New(router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		HabitHandler:     c.HabitContainer.Handler,
		CommunityHandler: c.CommunityContainer.Handler,
	}))
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
