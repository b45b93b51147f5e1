package domain

import "time"

// ReviewQuestionCount is the fixed number of scoring questions a curator
// answers per product.
const ReviewQuestionCount = 8

// Review is the curator's scorecard for a product, created exactly once at
// curation time and immutable afterwards.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"column:product_id;not null;uniqueIndex" json:"product_id"`
	CuratorID    uint      `gorm:"column:curator_id;not null;index" json:"curator_id"`
	Score1       int       `gorm:"column:score_1;not null" json:"score_1"`
	Score2       int       `gorm:"column:score_2;not null" json:"score_2"`
	Score3       int       `gorm:"column:score_3;not null" json:"score_3"`
	Score4       int       `gorm:"column:score_4;not null" json:"score_4"`
	Score5       int       `gorm:"column:score_5;not null" json:"score_5"`
	Score6       int       `gorm:"column:score_6;not null" json:"score_6"`
	Score7       int       `gorm:"column:score_7;not null" json:"score_7"`
	Score8       int       `gorm:"column:score_8;not null" json:"score_8"`
	TotalScore   int       `gorm:"column:total_score;not null" json:"total_score"`
	AverageScore float64   `gorm:"column:average_score;type:numeric;not null" json:"average_score"`
	PointsEarned int       `gorm:"column:points_earned;not null" json:"points_earned"`
	Comment      string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// Scores returns the eight question scores in order.
func (r Review) Scores() [ReviewQuestionCount]int {
	return [ReviewQuestionCount]int{
		r.Score1, r.Score2, r.Score3, r.Score4,
		r.Score5, r.Score6, r.Score7, r.Score8,
	}
}
