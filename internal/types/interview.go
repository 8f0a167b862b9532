package types

// InterviewQuestionCount is the number of questions a mock interview session holds.
const InterviewQuestionCount = 2

// InterviewQuestion is a role-specific interview prompt.
type InterviewQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Context  string `json:"context"`
}

// AnswerPair is one question/answer entry of the transcript sent for evaluation.
type AnswerPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// InterviewEvaluation is the scored feedback for a completed answer set.
type InterviewEvaluation struct {
	OverallScore float64  `json:"overallScore"`
	Clarity      string   `json:"clarity"`
	Depth        string   `json:"depth"`
	Suggestions  []string `json:"suggestions"`
}

// PairAnswers pairs answers to questions strictly by index.
// A question without a corresponding answer is paired with an empty string.
func PairAnswers(questions []InterviewQuestion, answers []string) []AnswerPair {
	pairs := make([]AnswerPair, 0, len(questions))
	for i, q := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		pairs = append(pairs, AnswerPair{Question: q.Question, Answer: answer})
	}
	return pairs
}
