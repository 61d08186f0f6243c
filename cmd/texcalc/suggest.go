package main

import (
	"errors"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/zephyrtronium/texcalc"
)

// suggest finds the closest known command to an unrecognized one in err, or
// returns the empty string if err is not about a command or nothing is close.
func suggest(err error) string {
	var le *texcalc.LexError
	if !errors.As(err, &le) || !strings.HasPrefix(le.Text, `\`) || len(le.Text) < 2 {
		return ""
	}
	ranks := fuzzy.RankFindFold(le.Text, texcalc.Commands())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
