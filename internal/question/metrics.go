package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeQuestion  = "question"
	outcomeExhausted = "exhausted"
	outcomeError     = "error"
)

var quizSelections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "trivia",
	Name:      "quiz_selections_total",
	Help:      "Quiz selections by outcome.",
}, []string{"outcome"})
