package main

// Check-in topics. Each carries a yes/no value plus optional detail text.
const (
	TopicPain       = "pain"
	TopicSuggestion = "suggestion"
	TopicQuestion   = "question"
)

// displayAnswer produces the read-only string for an answer: "yes" shows the
// detail, or 예 when none was given; "no" shows 아니오 for the pain topic and
// 없음 for the others. The check-in read-only view and the admin listing must
// render identically, so both go through here.
func displayAnswer(topic, value, detail string) string {
	if value == "yes" {
		if detail != "" {
			return detail
		}
		return "예"
	}
	if topic == TopicPain {
		return "아니오"
	}
	return "없음"
}

// answerView pairs an answer with its display string.
func answerView(topic, value, detail string) AnswerView {
	return AnswerView{Value: value, Detail: detail, Display: displayAnswer(topic, value, detail)}
}

// checkinView renders a stored record for read-only display.
func checkinView(rec *CheckinRecord) *CheckinView {
	return &CheckinView{
		ID:         rec.ID,
		Date:       rec.Date,
		Pain:       answerView(TopicPain, rec.PainValue, rec.PainDetail),
		Suggestion: answerView(TopicSuggestion, rec.SuggestionValue, rec.SuggestionDetail),
		Question:   answerView(TopicQuestion, rec.QuestionValue, rec.QuestionDetail),
		CreatedAt:  rec.CreatedAt,
	}
}

// normalizeAnswer clears stale detail text whenever the value is "no".
// Hidden detail fields must never leak previously typed text into storage.
func normalizeAnswer(a Answer) Answer {
	if a.Value == "no" {
		a.Detail = ""
	}
	return a
}
