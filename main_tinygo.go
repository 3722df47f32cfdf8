//go:build tinygo

package main

import (
	"flashhal/app"
	"flashhal/hal"
	"flashhal/partition"
)

func main() {
	app.Run(hal.New(), app.Config{
		Capacity: partition.Capacity4M,
		KV:       partition.DefaultKV,
	})
}
