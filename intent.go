package main

import "strings"

// Intent tags a query with the built-in command it triggers, if any.
type Intent int

const (
	IntentGeneric Intent = iota
	IntentTime
	IntentWeather
	IntentCostToday
	IntentCostTotal
)

func (i Intent) String() string {
	switch i {
	case IntentTime:
		return "TIME"
	case IntentWeather:
		return "WEATHER"
	case IntentCostToday:
		return "COST_TODAY"
	case IntentCostTotal:
		return "COST_TOTAL"
	default:
		return "GENERIC"
	}
}

// Override phrase tables. TIME and WEATHER match as substrings; the cost
// intents require the whole trimmed query to equal a phrase. The
// asymmetry is deliberate: cost queries are bookkeeping commands and a
// loose match would swallow ordinary questions that merely mention cost.
var (
	timePhrases = []string{
		"#what time is it",
		"#what's the time",
		"#what is my time",
		"#tell me the time",
		"#current time",
		"#time now",
	}

	weatherPhrases = []string{
		"#what is my weather like",
		"#what's the weather",
		"#weather now",
		"#current weather",
		"#how's the weather",
		"#weather in my area",
	}

	costTodayPhrases = []string{
		"#what is today's cost",
		"#today's cost",
		"#cost today",
	}

	costTotalPhrases = []string{
		"#what is the total cost",
		"#total cost",
		"#how many tokens used",
	}
)

// classify maps a query to its intent. Pure function: same input, same
// tag, first rule wins, GENERIC when nothing matches.
func classify(query string) Intent {
	lower := strings.ToLower(query)
	trimmed := strings.TrimSpace(lower)

	for _, phrase := range timePhrases {
		if strings.Contains(lower, phrase) {
			return IntentTime
		}
	}
	for _, phrase := range weatherPhrases {
		if strings.Contains(lower, phrase) {
			return IntentWeather
		}
	}
	for _, phrase := range costTodayPhrases {
		if trimmed == phrase {
			return IntentCostToday
		}
	}
	for _, phrase := range costTotalPhrases {
		if trimmed == phrase {
			return IntentCostTotal
		}
	}
	return IntentGeneric
}
