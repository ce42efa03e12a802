// Package adapter provides composable transforms applied between the game's
// raw states, rewards and actions and what an agent sees or emits.
package adapter

import (
	"math"

	"github.com/ezcoach/ezcoach-go/internal/protocol/schema"
)

// State transforms a state vector before the agent sees it.
type State func(state []float64) []float64

// Reward transforms a reward delta before the learner receives it.
type Reward func(reward float64) float64

// Action transforms an action after the agent emits it.
type Action func(action any) any

// ApplyState runs the adapters in order.
func ApplyState(state []float64, adapters []State) []float64 {
	for _, a := range adapters {
		state = a(state)
	}
	return state
}

// ApplyReward runs the adapters in order.
func ApplyReward(reward float64, adapters []Reward) float64 {
	for _, a := range adapters {
		reward = a(reward)
	}
	return reward
}

// ApplyAction runs the adapters in order.
func ApplyAction(action any, adapters []Action) any {
	for _, a := range adapters {
		action = a(action)
	}
	return action
}

// Round rounds every state component to the nearest integer.
func Round() State {
	return func(state []float64) []float64 {
		out := make([]float64, len(state))
		for i, v := range state {
			out[i] = math.Round(v)
		}
		return out
	}
}

// RoundTo rounds every state component to the given number of decimal places.
func RoundTo(places int) State {
	factor := math.Pow(10, float64(places))
	return func(state []float64) []float64 {
		out := make([]float64, len(state))
		for i, v := range state {
			out[i] = math.Round(v*factor) / factor
		}
		return out
	}
}

// Scale multiplies every state component by the factor.
func Scale(factor float64) State {
	return func(state []float64) []float64 {
		out := make([]float64, len(state))
		for i, v := range state {
			out[i] = v * factor
		}
		return out
	}
}

// Select keeps only the components at the given indices, in the given order.
func Select(indices ...int) State {
	return func(state []float64) []float64 {
		out := make([]float64, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(state) {
				out = append(out, state[idx])
			}
		}
		return out
	}
}

// Normalize maps every component through the definition's per-component
// normalization.
func Normalize(def schema.Value, zeroCentered bool) State {
	return func(state []float64) []float64 {
		return def.Normalize(state, zeroCentered)
	}
}

// ScaleReward multiplies the reward delta by the factor.
func ScaleReward(factor float64) Reward {
	return func(reward float64) float64 {
		return reward * factor
	}
}
