package session

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "chosenoffset.com/slimecount/internal/session"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
