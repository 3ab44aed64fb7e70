package model

const (
	ExamStatusGenerated = "generated"
	ExamStatusSubmitted = "submitted"
)

// ExamInstance is one sampled, seeded exam bound to a learner. The seed is
// fixed at creation; the whole shuffle is reproducible from it alone.
// swagger:model ExamInstance
type ExamInstance struct {
	UUIDBase
	MaterialID string `gorm:"type:varchar(36);index;not null" json:"materialId"`
	UserID     string `gorm:"type:varchar(36);index;not null" json:"userId"`
	RngSeed    int64  `gorm:"not null" json:"rngSeed"`
	Status     string `gorm:"size:20;default:generated" json:"status"`
}

func (ExamInstance) TableName() string {
	return "exam_instances"
}

// ExamInstanceQuestion is the frozen snapshot of one sampled bank item after
// shuffling. Correct holds the post-shuffle label, never the authored one.
// swagger:model ExamInstanceQuestion
type ExamInstanceQuestion struct {
	BaseModel
	ExamID     string `gorm:"type:varchar(36);uniqueIndex:idx_exam_order;not null" json:"examId"`
	Question   string `gorm:"type:text;not null" json:"question"`
	OptionA    string `gorm:"type:text" json:"optionA"`
	OptionB    string `gorm:"type:text" json:"optionB"`
	OptionC    string `gorm:"type:text" json:"optionC"`
	OptionD    string `gorm:"type:text" json:"optionD"`
	Correct    string `gorm:"size:1;not null" json:"-"`
	OrderIndex int    `gorm:"uniqueIndex:idx_exam_order;not null" json:"orderIndex"`
}

func (ExamInstanceQuestion) TableName() string {
	return "exam_instance_questions"
}
