package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Form struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"` // UUID
	Name        string  `json:"form_name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"form_des" gorm:"type:text" validate:"omitempty,max=5000"`
	CreatedBy   string  `json:"created_by" gorm:"size:255;index"`

	// Banner
	BannerPath        *string `json:"-" gorm:"size:500"`
	BannerFileName    *string `json:"banner_file_name" gorm:"size:255"`
	BannerContentType *string `json:"banner_content_type" gorm:"size:100"`
	BannerSize        int64   `json:"banner_size" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []FormQuestion `json:"questions" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Computed fields (not stored)
	QuestionsCount int `json:"questions_count" gorm:"-"`
}

func (Form) TableName() string {
	return "forms"
}

func (f *Form) HasBanner() bool {
	return f.BannerPath != nil && *f.BannerPath != ""
}

type FormQuestion struct {
	ID          uint           `json:"-" gorm:"primaryKey"`
	FormID      string         `json:"-" gorm:"not null;size:36;index:idx_form_question_position,priority:1"`
	Position    int            `json:"position" gorm:"not null;index:idx_form_question_position,priority:2"`
	QuestionKey string         `json:"id" gorm:"not null;size:64"`
	Name        string         `json:"questionName" gorm:"type:text"`
	Type        QuestionType   `json:"questionType" gorm:"not null;size:20"`
	Options     datatypes.JSON `json:"options" gorm:"type:jsonb"` // []string
	Required    bool           `json:"required" gorm:"default:false"`
}

func (FormQuestion) TableName() string {
	return "form_questions"
}

// NewFormQuestion converts an editor question into its stored row.
func NewFormQuestion(position int, q Question) (FormQuestion, error) {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return FormQuestion{}, err
	}
	return FormQuestion{
		Position:    position,
		QuestionKey: q.ID,
		Name:        q.QuestionName,
		Type:        q.QuestionType,
		Options:     datatypes.JSON(raw),
		Required:    q.Required,
	}, nil
}

// ToQuestion converts a stored row back into the editor representation.
func (fq FormQuestion) ToQuestion() (Question, error) {
	var options []string
	if len(fq.Options) > 0 {
		if err := json.Unmarshal(fq.Options, &options); err != nil {
			return Question{}, err
		}
	}
	return Question{
		ID:           fq.QuestionKey,
		QuestionName: fq.Name,
		QuestionType: fq.Type,
		Options:      options,
		Required:     fq.Required,
	}, nil
}
