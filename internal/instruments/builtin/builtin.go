// Package builtin links every built-in instrument into the catalogue.
package builtin

import (
	_ "github.com/mind-engage/mindengage-psychometrics/internal/instruments/bigfive"
	_ "github.com/mind-engage/mindengage-psychometrics/internal/instruments/cognitive"
	_ "github.com/mind-engage/mindengage-psychometrics/internal/instruments/enneagram"
)
