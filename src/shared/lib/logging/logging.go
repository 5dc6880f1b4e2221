package logging

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/veedubyou/vocal-split/src/shared/lib/env"
)

func Setup(environment env.Environment) {
	switch environment {
	case env.Production:
		log.SetHandler(json.New(os.Stderr))
		log.SetLevel(log.InfoLevel)
	case env.Test:
		log.SetHandler(text.New(os.Stderr))
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetHandler(text.New(os.Stderr))
		log.SetLevel(log.DebugLevel)
	}
}
