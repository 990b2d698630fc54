package main

import (
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/tomz197/rockstorm/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

var page = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>rockstorm</title></head>
<body style="background:#000;color:#ddd;font-family:monospace">
<pre>
 ROCKSTORM

 Play in your terminal:

   ssh -t -p {{.Port}} {{.Host}}

 Arrows steer and thrust, space fires, h jumps to hyperspace,
 x runs a scan, e opens the ship editor, p pauses, q quits.
</pre>
</body>
</html>
`))

type pageData struct {
	Host string
	Port string
}

func main() {
	cfg, err := config.Load(config.GetEnv("ROCKSTORM_CONFIG", "rockstorm.toml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	data := pageData{
		Host: config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		Port: cfg.SSH.Port,
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			log.Warn("render page", zap.Error(err))
		}
	})

	addr := net.JoinHostPort(host, port)
	log.Info("starting web server", zap.String("addr", addr), zap.String("ssh_host", data.Host))
	if err := http.ListenAndServe(addr, nil); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
}
