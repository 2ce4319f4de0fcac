package main

import (
	"threadcache-backend/cmd/threadcache/commands"
	"threadcache-backend/lib/serviceutil"
)

func main() {
	err := commands.ExecuteContext(serviceutil.SignalContext())
	if err != nil {
		serviceutil.Fatal("threadcache failed", err)
	}
}
