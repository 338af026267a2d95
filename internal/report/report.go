// Package report подводит итоги сессии и печатает их в консоль.
package report

import "listen-repeat/internal/session"

// Report - итог сессии. Score - средняя похожесть в процентах.
type Report struct {
	Attempts []session.Attempt
	Score    float64
}

// Finalize считает итог. Для пустой сессии Score равен 0.
func Finalize(attempts []session.Attempt) Report {
	r := Report{Attempts: attempts}
	if len(attempts) == 0 {
		return r
	}

	var sum float64
	for _, a := range attempts {
		sum += a.Similarity()
	}
	r.Score = sum / float64(len(attempts)) * 100
	return r
}

// PhoneticScore - средняя фонетическая похожесть в процентах.
func (r Report) PhoneticScore() float64 {
	if len(r.Attempts) == 0 {
		return 0
	}

	var sum float64
	for _, a := range r.Attempts {
		sum += a.Phonetic
	}
	return sum / float64(len(r.Attempts)) * 100
}
