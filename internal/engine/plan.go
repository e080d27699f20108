package engine

import (
	"sort"
	"strings"

	"github.com/ppiankov/alphacut/internal/model"
)

// Plan groups operations into waves. Every operation in a wave depends only
// on workload sets and operations of earlier waves, so a wave can run
// concurrently. Waves hold indexes into ops in workload order.
func Plan(sets []model.SetSpec, ops []model.Operation) ([][]int, error) {
	known := make(map[string]bool, len(sets)+len(ops))
	for _, s := range sets {
		known[s.Name] = true
	}
	opIndex := make(map[string]int, len(ops))
	for i, op := range ops {
		opIndex[op.Name] = i
		known[op.Name] = true
	}

	deps := make([][]int, len(ops))
	for i, op := range ops {
		for _, ref := range []string{op.Left, op.Right} {
			if !known[ref] {
				return nil, ErrUnknownSet.New(op.Name, ref)
			}
			if j, ok := opIndex[ref]; ok {
				deps[i] = append(deps[i], j)
			}
		}
	}

	done := make([]bool, len(ops))
	remaining := len(ops)
	var waves [][]int
	for remaining > 0 {
		var wave []int
		for i := range ops {
			if done[i] || !ready(deps[i], done) {
				continue
			}
			wave = append(wave, i)
		}
		if len(wave) == 0 {
			return nil, ErrCycle.New(strings.Join(pending(ops, done), ", "))
		}
		for _, i := range wave {
			done[i] = true
		}
		remaining -= len(wave)
		waves = append(waves, wave)
	}
	return waves, nil
}

func ready(deps []int, done []bool) bool {
	for _, d := range deps {
		if !done[d] {
			return false
		}
	}
	return true
}

func pending(ops []model.Operation, done []bool) []string {
	var names []string
	for i, op := range ops {
		if !done[i] {
			names = append(names, op.Name)
		}
	}
	sort.Strings(names)
	return names
}
