// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/obsidian-money/obsidiand/node"
)

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	optionDefs := []getoptions.Option{
		{Long: "data-dir", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "debug", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'D'},
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
	}
	program, options, _, err := getoptions.GetOS(optionDefs)
	if nil != err {
		exitwithstatus.Message("%s: option parsing error: %s", program, err)
	}

	if len(options["help"]) > 0 {
		fmt.Printf("usage: %s [--help] [--version] [--data-dir=DIR] [--debug=TAG:LEVEL]\n", program)
		exitwithstatus.Exit(0)
	}
	if len(options["version"]) > 0 {
		fmt.Printf("%s version: %s\n", program, Version())
		exitwithstatus.Exit(0)
	}

	dataDirectory := "."
	if n := len(options["data-dir"]); n > 0 {
		dataDirectory = options["data-dir"][n-1]
	}

	logLevels := map[string]string{
		logger.DefaultTag: "info",
	}
	for _, item := range options["debug"] {
		s := strings.SplitN(item, ":", 2)
		if 2 == len(s) {
			logLevels[s[0]] = s[1]
		} else {
			logLevels[logger.DefaultTag] = item
		}
	}

	// start logging
	logDirectory := filepath.Join(dataDirectory, "log")
	if err := os.MkdirAll(logDirectory, 0700); nil != err {
		exitwithstatus.Message("%s: log directory: %s  error: %s", program, logDirectory, err)
	}
	err = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      program + ".log",
		Size:      1048576,
		Count:     10,
		Levels:    logLevels,
	})
	if nil != err {
		exitwithstatus.Message("%s: logger setup failed: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", Version())
	log.Infof("data directory: %s", dataDirectory)

	if err := node.Initialise(dataDirectory); nil != err {
		log.Criticalf("initialise error: %s", err)
		exitwithstatus.Message("%s: initialise error: %s", program, err)
	}

	// abort on a signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)

	if err := node.Finalise(); nil != err {
		log.Criticalf("finalise error: %s", err)
	}
}
