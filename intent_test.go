package main

import "testing"

func TestClassifyOverridePhrases(t *testing.T) {
	cases := []struct {
		query string
		want  Intent
	}{
		// TIME: substring match, any case
		{"#what time is it", IntentTime},
		{"#WHAT TIME IS IT", IntentTime},
		{"hey, #tell me the time please", IntentTime},
		{"#current time", IntentTime},
		{"#time now", IntentTime},

		// WEATHER: substring match on fixed phrases only
		{"#what's the weather", IntentWeather},
		{"#Weather Now", IntentWeather},
		{"so #how's the weather today?", IntentWeather},
		{"#weather in my area", IntentWeather},

		// COST: exact equality after trim/lower
		{"#cost today", IntentCostToday},
		{"  #Today's Cost  ", IntentCostToday},
		{"#what is today's cost", IntentCostToday},
		{"#total cost", IntentCostTotal},
		{"#HOW MANY TOKENS USED", IntentCostTotal},
		{"#what is the total cost", IntentCostTotal},

		// Cost phrases embedded in a longer query do NOT match
		{"#cost today please", IntentGeneric},
		{"tell me #total cost", IntentGeneric},

		// Bare "weather" without an override phrase stays generic
		{"what is the weather like in Tokyo", IntentGeneric},
		{"weather", IntentGeneric},

		{"how do goroutines work", IntentGeneric},
		{"what time does the store open", IntentGeneric},
	}

	for _, tc := range cases {
		if got := classify(tc.query); got != tc.want {
			t.Errorf("classify(%q) = %s, want %s", tc.query, got, tc.want)
		}
	}
}

func TestClassifyPrecedenceTimeBeforeWeather(t *testing.T) {
	// A query containing both a TIME and a WEATHER phrase takes TIME.
	if got := classify("#time now and #weather now"); got != IntentTime {
		t.Errorf("expected TIME to win precedence, got %s", got)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	queries := []string{"#what time is it", "#cost today", "random question", ""}
	for _, q := range queries {
		first := classify(q)
		for i := 0; i < 3; i++ {
			if got := classify(q); got != first {
				t.Fatalf("classify(%q) is not stable: %s then %s", q, first, got)
			}
		}
	}
}
