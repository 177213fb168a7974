package deadline

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Conector opcional antes da expressão de prazo ("by friday", "due 12/25").
// O conector é consumido junto com a expressão reconhecida.
const connector = `(?:(?:by|on|due|at)\s+)?`

// rule é um reconhecedor independente de expressão de prazo.
// resolve recebe os grupos capturados e devolve a data resolvida,
// ou false quando a ocorrência não é válida (ex: mês 13).
type rule struct {
	re      *regexp.Regexp
	resolve func(groups []string, now time.Time) (time.Time, bool)
}

// Regras avaliadas em ordem fixa de prioridade: a mais específica vence
// quando as expressões poderiam se sobrepor.
var rules = []rule{
	// Data explícita: MM/DD/YYYY ou MM/DD (ano corrente por padrão)
	{
		re: regexp.MustCompile(`(?i)\b` + connector + `(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`),
		resolve: func(groups []string, now time.Time) (time.Time, bool) {
			month, _ := strconv.Atoi(groups[1])
			day, _ := strconv.Atoi(groups[2])
			if month < 1 || month > 12 || day < 1 || day > 31 {
				return time.Time{}, false
			}
			year := now.Year()
			if groups[3] != "" {
				year, _ = strconv.Atoi(groups[3])
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
		},
	},
	// Deslocamento relativo em dias: "in N days"
	{
		re: regexp.MustCompile(`(?i)\b` + connector + `in\s+(\d+)\s+days?\b`),
		resolve: func(groups []string, now time.Time) (time.Time, bool) {
			n, err := strconv.Atoi(groups[1])
			if err != nil || n < 1 {
				return time.Time{}, false
			}
			return dateOf(now).AddDate(0, 0, n), true
		},
	},
	// Períodos relativos nomeados
	{
		re: regexp.MustCompile(`(?i)\b` + connector + `(tomorrow|today|next\s+week|next\s+month)\b`),
		resolve: func(groups []string, now time.Time) (time.Time, bool) {
			phrase := strings.Join(strings.Fields(strings.ToLower(groups[1])), " ")
			switch phrase {
			case "tomorrow":
				return dateOf(now).AddDate(0, 0, 1), true
			case "today":
				return dateOf(now), true
			case "next week":
				return dateOf(now).AddDate(0, 0, 7), true
			case "next month":
				return addMonthClamped(dateOf(now)), true
			}
			return time.Time{}, false
		},
	},
	// Dias da semana: próxima ocorrência, incluindo o próprio dia de hoje
	{
		re: regexp.MustCompile(`(?i)\b` + connector + `(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		resolve: func(groups []string, now time.Time) (time.Time, bool) {
			target, ok := weekdays[strings.ToLower(groups[1])]
			if !ok {
				return time.Time{}, false
			}
			delta := (int(target) - int(now.Weekday()) + 7) % 7
			return dateOf(now).AddDate(0, 0, delta), true
		},
	},
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Extract reconhece uma expressão de prazo no texto e devolve o texto limpo
// (sem a expressão) e a data resolvida em relação a now. Apenas a primeira
// expressão reconhecida é consumida; sem reconhecimento, o texto volta
// intacto e a data é nula. Extract nunca falha.
func Extract(text string, now time.Time) (string, *time.Time) {
	for _, r := range rules {
		for _, idx := range r.re.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, 0, len(idx)/2)
			for g := 0; g < len(idx); g += 2 {
				if idx[g] < 0 {
					groups = append(groups, "")
				} else {
					groups = append(groups, text[idx[g]:idx[g+1]])
				}
			}
			if resolved, ok := r.resolve(groups, now); ok {
				return strip(text, idx[0], idx[1]), &resolved
			}
		}
	}
	return text, nil
}

// strip remove o trecho [start, end) do texto e normaliza os espaços.
// A descrição nunca pode ficar vazia: se a remoção esvaziar o texto,
// a expressão original é mantida.
func strip(text string, start, end int) string {
	cleaned := strings.Join(strings.Fields(text[:start]+" "+text[end:]), " ")
	if cleaned == "" {
		return strings.TrimSpace(text)
	}
	return cleaned
}

// dateOf descarta o componente de horário, mantendo só a data
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addMonthClamped avança um mês de calendário, ajustando o dia para o
// último dia válido do mês de destino quando necessário (ex: 31/01 → 28/02)
func addMonthClamped(d time.Time) time.Time {
	year, month, day := d.Date()
	lastDay := time.Date(year, month+2, 0, 0, 0, 0, 0, d.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month+1, day, 0, 0, 0, 0, d.Location())
}
