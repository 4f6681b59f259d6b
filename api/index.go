package handler

import (
	"mentorbook/config"
	"mentorbook/di"
	"mentorbook/shared/logger"
	"mentorbook/transport/http"
	nethttp "net/http"
	"sync"
)

var (
	app  *http.HTTP
	once sync.Once
)

func Handler(w nethttp.ResponseWriter, r *nethttp.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
