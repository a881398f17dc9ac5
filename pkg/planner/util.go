package planner

import "math"

func floorInt(v float64) int { return int(math.Floor(v)) }
func ceilInt(v float64) int  { return int(math.Ceil(v)) }

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
