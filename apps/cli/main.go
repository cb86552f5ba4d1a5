package main

import (
	"log"
	"os"

	"github.com/sistemaclass/classcli/core"
	logsvc "github.com/sistemaclass/classcli/services/logger"
	"github.com/sistemaclass/classcli/session"
	"github.com/sistemaclass/classcli/storage/rest"
)

var logger core.Logger

func main() {
	defer os.Exit(0)

	std := log.New(os.Stderr, "CLASS : ", log.LstdFlags|log.Lmicroseconds)
	if core.Conf.GetBool("debug") {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std)
	}

	store, err := session.NewStore("")
	errAndDie(err)

	cli := commandLine{
		client: rest.NewDefaultClient(),
		store:  store,
		out:    os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(err.Error())
			os.Exit(1)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
