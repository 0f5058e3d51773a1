// Copyright (c) tkc17.

package main

import (
	"github.com/tkc17/iw-parser/cli"
	"github.com/tkc17/iw-parser/util"
)

func setDefaultConfigs() {
	config := util.CurrentConfig()
	_, err := config.CompareAndUpdate(util.AgentIdKey, nil, util.NewUUID().String())
	if err != nil {
		panic(err)
	}
	_, err = config.CompareAndUpdate(util.AgentLogKey, nil, util.DefaultAgentLog)
	if err != nil {
		panic(err)
	}
	_, err = config.CompareAndUpdate(util.MonitorIntervalKey, nil, "2")
	if err != nil {
		panic(err)
	}
	_, err = config.CompareAndUpdate(util.MonitorIwPathKey, nil, util.DefaultIwPath)
	if err != nil {
		panic(err)
	}
	_, err = config.CompareAndUpdate(util.ServerBindIpKey, nil, util.DefaultBindIp)
	if err != nil {
		panic(err)
	}
	_, err = config.CompareAndUpdate(util.ServerPortKey, nil, util.DefaultPort)
	if err != nil {
		panic(err)
	}
	_, err = config.CompareAndUpdate(util.RequestTimeoutKey, nil, "30")
	if err != nil {
		panic(err)
	}
}

// Entry for CLI.
func main() {
	setDefaultConfigs()
	cli.Execute()
}
