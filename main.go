package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/qwiicgo/button-backend/api"
)

func main() {
	fakeValues := flag.Bool("fake", false, "run against a fake board instead of real hardware")
	listen := flag.String("listen", ":8080", "address to serve the API on")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{DisableColors: true})

	controller, err := api.NewController(*fakeValues, "./")
	if err != nil {
		log.Fatalln("bring-up failed:", err)
	}
	defer controller.Close()

	server := api.NewServer(controller)
	if err := server.Router().Run(*listen); err != nil {
		log.Fatalln(err)
	}
}
