package scoring

import "sort"

// CronbachAlpha computes Cronbach's alpha for a [participants][items] matrix
// using population variance. Degenerate input yields 0; the result is
// clamped to [0,1].
func CronbachAlpha(matrix [][]float64) float64 {
	n := len(matrix)
	if n == 0 {
		return 0
	}
	k := len(matrix[0])
	if k < 2 {
		return 0
	}

	means := make([]float64, k)
	totals := make([]float64, n)
	for i, row := range matrix {
		if len(row) != k {
			return 0
		}
		for j, v := range row {
			means[j] += v
			totals[i] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}

	var sumItemVars float64
	for j := 0; j < k; j++ {
		var s float64
		for i := 0; i < n; i++ {
			d := matrix[i][j] - means[j]
			s += d * d
		}
		sumItemVars += s / float64(n)
	}

	var totalMean float64
	for _, t := range totals {
		totalMean += t
	}
	totalMean /= float64(n)
	var totalVar float64
	for _, t := range totals {
		d := t - totalMean
		totalVar += d * d
	}
	totalVar /= float64(n)
	if totalVar == 0 {
		return 0
	}

	kf := float64(k)
	alpha := (kf / (kf - 1)) * (1 - sumItemVars/totalVar)
	if alpha < 0 {
		return 0
	}
	if alpha > 1 {
		return 1
	}
	return alpha
}

// Reliability is the internal consistency of each dimension across many
// submissions of one assessment. Only submissions that answered every item
// of a dimension enter that dimension's matrix. Values are normalized and
// reverse keyed exactly as in scoring.
func Reliability(submissions [][]Answer, def Definition) map[string]float64 {
	perDim := map[string][]string{}
	for q, d := range def.QuestionDimensions {
		perDim[d] = append(perDim[d], q)
	}
	for d := range perDim {
		sort.Strings(perDim[d])
	}

	values := make([]map[string]float64, 0, len(submissions))
	for _, answers := range submissions {
		items, _ := normalizeAnswers(answers, def)
		m := make(map[string]float64, len(items))
		for _, it := range items {
			m[it.question] = it.value
		}
		values = append(values, m)
	}

	out := make(map[string]float64, len(perDim))
	for d, qs := range perDim {
		var matrix [][]float64
		for _, m := range values {
			row := make([]float64, 0, len(qs))
			for _, q := range qs {
				v, ok := m[q]
				if !ok {
					break
				}
				row = append(row, v)
			}
			if len(row) == len(qs) {
				matrix = append(matrix, row)
			}
		}
		out[d] = Round2(CronbachAlpha(matrix))
	}
	return out
}
