package platform

import (
	"os"
	"strconv"
	"strings"
)

const (
	// EnvColorScheme forces the platform preference: "dark" or "light".
	EnvColorScheme = "CSF_DASHBOARD_COLOR_SCHEME"
	// EnvColorFGBG is the rxvt-style "fg;bg" colour hint many terminals export.
	EnvColorFGBG = "COLORFGBG"
)

// Env reads the preference from environment variables. It never changes
// while the process runs, so subscriptions receive no events.
type Env struct {
	lookup func(string) (string, bool)
}

// NewEnv returns an Env detector. A nil lookup uses os.LookupEnv.
func NewEnv(lookup func(string) (string, bool)) *Env {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Env{lookup: lookup}
}

func (e *Env) Name() string { return "env" }

func (e *Env) Available() bool {
	_, ok := e.detect()
	return ok
}

func (e *Env) QueryDarkPreferred() bool {
	dark, _ := e.detect()
	return dark
}

func (e *Env) Subscribe(func(bool)) func() { return func() {} }

func (e *Env) detect() (dark bool, ok bool) {
	if v, set := e.lookup(EnvColorScheme); set {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "dark":
			return true, true
		case "light":
			return false, true
		}
	}
	if v, set := e.lookup(EnvColorFGBG); set {
		return parseColorFGBG(v)
	}
	return false, false
}

// parseColorFGBG reads the background index, the last ';' field. ANSI
// indexes 0-6 and 8 are dark backgrounds.
func parseColorFGBG(v string) (dark bool, ok bool) {
	fields := strings.Split(strings.TrimSpace(v), ";")
	bg, err := strconv.Atoi(strings.TrimSpace(fields[len(fields)-1]))
	if err != nil || bg < 0 || bg > 15 {
		return false, false
	}
	return bg <= 6 || bg == 8, true
}
