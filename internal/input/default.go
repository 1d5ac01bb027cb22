package input

import (
	"fmt"
	"log"
	"unicode"

	"git.lost.host/meutraa/beatsmash/internal/game"
	"github.com/eiannone/keyboard"
)

// Action is what a single key press means to the game
type Action struct {
	Lane game.Lane
	Quit bool
}

var laneKeys = map[rune]game.Lane{
	'd': game.LaneD,
	'f': game.LaneF,
	'j': game.LaneJ,
	'k': game.LaneK,
}

// Translate maps a key event to an action, ok is false for keys that do
// nothing
func Translate(ev keyboard.KeyEvent) (Action, bool) {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Action{Lane: game.LaneUninit, Quit: true}, true
	case keyboard.KeySpace:
		return Action{Lane: game.LaneSpace}, true
	}
	if lane, ok := laneKeys[unicode.ToLower(ev.Rune)]; ok {
		return Action{Lane: lane}, true
	}
	return Action{}, false
}

type Keys struct {
	events <-chan keyboard.KeyEvent
}

func Open(buffer int) (*Keys, error) {
	events, err := keyboard.GetKeys(buffer)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return &Keys{events: events}, nil
}

// Drain returns the actions of every key pressed since the last call without
// blocking
func (k *Keys) Drain() []Action {
	actions := []Action{}
	for i := len(k.events); i > 0; i-- {
		ev := <-k.events
		if nil != ev.Err {
			log.Println("unable to read key", ev.Err)
			continue
		}
		if action, ok := Translate(ev); ok {
			actions = append(actions, action)
		}
	}
	return actions
}

func (k *Keys) Close() {
	if err := keyboard.Close(); nil != err {
		log.Println("unable to close keyboard", err)
	}
}
