package inbound

import (
	"net/http"

	"github.com/shandysiswandi/eventex/internal/pkg/router"
)

// FormPath is where the subscription page lives.
const FormPath = "/inscricao/"

func RegisterHTTPEndpoint(r *router.Router, uc uc, csrf *router.CSRF) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/subscriptions", end.Create)
	r.GET("/api/v1/subscriptions/:id", end.Detail)

	web := &WebEndpoint{uc: uc, csrf: csrf}

	r.GETRaw("/", http.RedirectHandler(FormPath, http.StatusFound))
	r.GETRaw(FormPath, http.HandlerFunc(web.Form), csrf.Protect)
	r.POSTRaw(FormPath, http.HandlerFunc(web.Subscribe), csrf.Protect)
}
