package deadline

import (
	"testing"
	"time"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// 2024-07-10 caiu numa quarta-feira
var wednesday = time.Date(2024, time.July, 10, 15, 30, 0, 0, time.UTC)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		now          time.Time
		wantCleaned  string
		wantDeadline *time.Time
	}{
		{
			name:         "sem expressão de prazo",
			text:         "nonsense text",
			now:          wednesday,
			wantCleaned:  "nonsense text",
			wantDeadline: nil,
		},
		{
			name:         "in N days",
			text:         "Finish report in 3 days",
			now:          wednesday,
			wantCleaned:  "Finish report",
			wantDeadline: ptr(date(2024, 7, 13)),
		},
		{
			name:         "in N days sozinho mantém a descrição original",
			text:         "in 5 days",
			now:          wednesday,
			wantCleaned:  "in 5 days",
			wantDeadline: ptr(date(2024, 7, 15)),
		},
		{
			name:         "by tomorrow",
			text:         "Review project proposal by tomorrow",
			now:          wednesday,
			wantCleaned:  "Review project proposal",
			wantDeadline: ptr(date(2024, 7, 11)),
		},
		{
			name:         "today usa a data de hoje",
			text:         "pay rent today",
			now:          wednesday,
			wantCleaned:  "pay rent",
			wantDeadline: ptr(date(2024, 7, 10)),
		},
		{
			name:         "next week",
			text:         "plan sprint next week",
			now:          wednesday,
			wantCleaned:  "plan sprint",
			wantDeadline: ptr(date(2024, 7, 17)),
		},
		{
			name:         "next month mantém o dia do mês",
			text:         "renew lease next month",
			now:          wednesday,
			wantCleaned:  "renew lease",
			wantDeadline: ptr(date(2024, 8, 10)),
		},
		{
			name:         "next month ajusta para o último dia válido",
			text:         "pay invoice next month",
			now:          time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC),
			wantCleaned:  "pay invoice",
			wantDeadline: ptr(date(2024, 2, 29)),
		},
		{
			name:         "dia da semana seguinte",
			text:         "Review docs by Friday",
			now:          wednesday,
			wantCleaned:  "Review docs",
			wantDeadline: ptr(date(2024, 7, 12)),
		},
		{
			name: "dia da semana igual a hoje resolve para hoje",
			text: "standup notes monday",
			// 2024-07-08 caiu numa segunda-feira
			now:          time.Date(2024, time.July, 8, 8, 0, 0, 0, time.UTC),
			wantCleaned:  "standup notes",
			wantDeadline: ptr(date(2024, 7, 8)),
		},
		{
			name:         "data explícita MM/DD usa o ano corrente mesmo no passado",
			text:         "party on 1/01",
			now:          wednesday,
			wantCleaned:  "party",
			wantDeadline: ptr(date(2024, 1, 1)),
		},
		{
			name:         "data explícita MM/DD no futuro",
			text:         "Submit taxes by 12/25",
			now:          wednesday,
			wantCleaned:  "Submit taxes",
			wantDeadline: ptr(date(2024, 12, 25)),
		},
		{
			name:         "data explícita com ano",
			text:         "ship release 12/25/2024",
			now:          wednesday,
			wantCleaned:  "ship release",
			wantDeadline: ptr(date(2024, 12, 25)),
		},
		{
			name:         "data inválida não é reconhecida",
			text:         "meet 13/45 before lunch",
			now:          wednesday,
			wantCleaned:  "meet 13/45 before lunch",
			wantDeadline: nil,
		},
		{
			name:         "data inválida cai para a regra seguinte",
			text:         "meet 13/45 tomorrow",
			now:          wednesday,
			wantCleaned:  "meet 13/45",
			wantDeadline: ptr(date(2024, 7, 11)),
		},
		{
			name:         "maiúsculas e minúsculas são equivalentes",
			text:         "DEPLOY BY TOMORROW",
			now:          wednesday,
			wantCleaned:  "DEPLOY",
			wantDeadline: ptr(date(2024, 7, 11)),
		},
		{
			name:         "conector due é consumido junto",
			text:         "file report due friday",
			now:          wednesday,
			wantCleaned:  "file report",
			wantDeadline: ptr(date(2024, 7, 12)),
		},
		{
			name:         "apenas a primeira expressão é consumida",
			text:         "call mom tomorrow and again friday",
			now:          wednesday,
			wantCleaned:  "call mom and again friday",
			wantDeadline: ptr(date(2024, 7, 11)),
		},
		{
			name:         "remoção que esvaziaria a descrição é desfeita",
			text:         "by tomorrow",
			now:          wednesday,
			wantCleaned:  "by tomorrow",
			wantDeadline: ptr(date(2024, 7, 11)),
		},
		{
			name:         "espaços extras são normalizados",
			text:         "  Review   docs   by friday  ",
			now:          wednesday,
			wantCleaned:  "Review docs",
			wantDeadline: ptr(date(2024, 7, 12)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, got := Extract(tt.text, tt.now)
			if cleaned != tt.wantCleaned {
				t.Errorf("texto limpo = %q, esperado %q", cleaned, tt.wantCleaned)
			}
			switch {
			case got == nil && tt.wantDeadline != nil:
				t.Errorf("prazo = nil, esperado %v", tt.wantDeadline)
			case got != nil && tt.wantDeadline == nil:
				t.Errorf("prazo = %v, esperado nil", got)
			case got != nil && !got.Equal(*tt.wantDeadline):
				t.Errorf("prazo = %v, esperado %v", got, tt.wantDeadline)
			}
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	c1, d1 := Extract("Review docs by Friday", wednesday)
	c2, d2 := Extract("Review docs by Friday", wednesday)
	if c1 != c2 || !d1.Equal(*d2) {
		t.Errorf("duas chamadas com a mesma entrada divergiram: (%q, %v) vs (%q, %v)", c1, d1, c2, d2)
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
