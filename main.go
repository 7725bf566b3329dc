package main

import (
	"context"

	"github.com/shandysiswandi/eventex/internal/app"
)

// @title           Eventex API
// @version         1.0
// @description     Eventex receives event subscriptions and confirms them by email.
// @contact.name    Eventex
// @contact.email   contato@eventex.com.br
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	eventex := app.New()
	<-eventex.Start()

	ctx, cancel := context.WithTimeout(context.Background(), eventex.ShutdownTimeout())
	defer cancel()

	eventex.Stop(ctx)
}
