package main

import (
	"log"
	"os"

	stubapi "github.com/sistemaclass/classcli/apps/stubserver/echo"
	"github.com/sistemaclass/classcli/core"
	logsvc "github.com/sistemaclass/classcli/services/logger"
)

func main() {
	std := log.New(os.Stdout, "STUB : ", log.LstdFlags|log.Lmicroseconds)

	var logger core.Logger
	if core.Conf.GetBool("debug") {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std)
	}

	addr := core.Conf.GetString("stubAddress")
	if addr == "" {
		addr = ":8000"
	}

	logger.Info("stub backend listening on " + addr)
	app := stubapi.NewServer(&stubapi.Options{Address: addr})
	app.Start()
}
