package engine

import (
	"errors"
	"strings"
)

type Engine string

const (
	Google     Engine = "Google"
	Bing       Engine = "Bing"
	DuckDuckGo Engine = "DuckDuckGo"
	Brave      Engine = "Brave"
	YouCom     Engine = "You.com"
)

var ErrUnknownEngine = errors.New("unknown engine")

type Info struct {
	Name string

	Color   string
	Initial string
}

var infos = map[Engine]Info{
	Google:     {Name: "Google", Color: "#3B82F6", Initial: "G"},
	Bing:       {Name: "Bing", Color: "#1D4ED8", Initial: "B"},
	DuckDuckGo: {Name: "DuckDuckGo", Color: "#CA8A04", Initial: "D"},
	Brave:      {Name: "Brave", Color: "#F97316", Initial: "B"},
	YouCom:     {Name: "You.com", Color: "#A855F7", Initial: "Y"},
}

// All returns every known engine in display order.
func All() []Engine {
	return []Engine{Google, Bing, DuckDuckGo, Brave, YouCom}
}

func Parse(val string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "google":
		return Google, nil

	case "bing":
		return Bing, nil

	case "duckduckgo", "ddg":
		return DuckDuckGo, nil

	case "brave":
		return Brave, nil

	case "you.com", "you", "youcom":
		return YouCom, nil
	}

	return "", errors.Join(ErrUnknownEngine, errors.New(val))
}

func (e Engine) Valid() bool {
	_, ok := infos[e]
	return ok
}

func (e Engine) Info() Info {
	if info, ok := infos[e]; ok {
		return info
	}

	return Info{
		Name:    string(e),
		Color:   "#6B7280",
		Initial: strings.ToUpper(firstRune(string(e))),
	}
}

func (e Engine) String() string {
	return string(e)
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}

	return ""
}
