package tips

import (
	"math/rand"
	"strings"
)

var defaultTips = []string{
	"Remember to take medications with water",
	"Store medications in a cool, dry place",
	"Keep track of your medication schedule",
}

var antibioticTips = []string{
	"Complete the full course of antibiotics",
	"Take at regular intervals as prescribed",
}

// DailyTip returns a random tip for the given medication. Names
// containing "antibiotic" (any case) draw from the antibiotic list,
// everything else from the default list.
func DailyTip(medicationName string) string {
	list := defaultTips
	if strings.Contains(strings.ToLower(medicationName), "antibiotic") {
		list = antibioticTips
	}
	return list[rand.Intn(len(list))]
}
