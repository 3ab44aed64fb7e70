package model

// QuestionBankItem is an authored multiple-choice question. The four options
// and the correct label are immutable once authored; exams copy them into a
// frozen snapshot instead of referencing them.
// swagger:model QuestionBankItem
type QuestionBankItem struct {
	UUIDBase
	MaterialID string `gorm:"type:varchar(36);index;not null" json:"materialId"`
	Question   string `gorm:"type:text;not null" json:"question"`
	OptionA    string `gorm:"type:text" json:"optionA"`
	OptionB    string `gorm:"type:text" json:"optionB"`
	OptionC    string `gorm:"type:text" json:"optionC"`
	OptionD    string `gorm:"type:text" json:"optionD"`
	Correct    string `gorm:"size:1;not null" json:"correct"` // A, B, C or D
}

func (QuestionBankItem) TableName() string {
	return "question_bank"
}

// Option returns the option text stored under a label.
func (q QuestionBankItem) Option(label string) string {
	switch label {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}
