package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/communitysvc/domain"
)

// CourseRepositoryImpl implements domain.CourseRepository using GORM
type CourseRepositoryImpl struct {
	db *gorm.DB
}

// DBCourse represents the database model for Course
type DBCourse struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	CoverURL    string `gorm:"size:255"`
	SortOrder   int    `gorm:"default:0"`
	IsPublished bool   `gorm:"index;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBCourse) TableName() string { return "courses" }

// BeforeCreate assigns the UUID primary key.
func (c *DBCourse) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DBLearningRecord represents per-user course progress. One row per
// (user, course) pair.
type DBLearningRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"size:36;uniqueIndex:idx_user_course"`
	CourseID    string `gorm:"size:36;uniqueIndex:idx_user_course"`
	Progress    int    `gorm:"default:0"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBLearningRecord) TableName() string { return "learning_records" }

// BeforeCreate assigns the UUID primary key.
func (l *DBLearningRecord) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

// Create implements domain.CourseRepository
func (r *CourseRepositoryImpl) Create(ctx context.Context, course *domain.Course) error {
	dbCourse := courseToDB(course)
	if err := r.db.WithContext(ctx).Create(dbCourse).Error; err != nil {
		return err
	}
	course.ID = dbCourse.ID
	return nil
}

// FindByID implements domain.CourseRepository
func (r *CourseRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var dbCourse DBCourse
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbCourse).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return courseToDomain(&dbCourse), nil
}

// Update implements domain.CourseRepository
func (r *CourseRepositoryImpl) Update(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Model(&DBCourse{ID: course.ID}).Updates(map[string]any{
		"title":        course.Title,
		"description":  course.Description,
		"cover_url":    course.CoverURL,
		"sort_order":   course.SortOrder,
		"is_published": course.IsPublished,
	}).Error
}

// Delete implements domain.CourseRepository
func (r *CourseRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DBCourse{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List implements domain.CourseRepository
func (r *CourseRepositoryImpl) List(ctx context.Context, onlyPublished bool) ([]*domain.Course, error) {
	q := r.db.WithContext(ctx).Order("sort_order ASC")
	if onlyPublished {
		q = q.Where("is_published = ?", true)
	}
	var dbCourses []DBCourse
	if err := q.Find(&dbCourses).Error; err != nil {
		return nil, err
	}
	courses := make([]*domain.Course, 0, len(dbCourses))
	for i := range dbCourses {
		courses = append(courses, courseToDomain(&dbCourses[i]))
	}
	return courses, nil
}

// CountPublished implements domain.CourseRepository
func (r *CourseRepositoryImpl) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBCourse{}).Where("is_published = ?", true).Count(&n).Error
	return n, err
}

func courseToDB(course *domain.Course) *DBCourse {
	return &DBCourse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		CoverURL:    course.CoverURL,
		SortOrder:   course.SortOrder,
		IsPublished: course.IsPublished,
	}
}

func courseToDomain(dbCourse *DBCourse) *domain.Course {
	return &domain.Course{
		ID:          dbCourse.ID,
		Title:       dbCourse.Title,
		Description: dbCourse.Description,
		CoverURL:    dbCourse.CoverURL,
		SortOrder:   dbCourse.SortOrder,
		IsPublished: dbCourse.IsPublished,
		CreatedAt:   dbCourse.CreatedAt,
		UpdatedAt:   dbCourse.UpdatedAt,
	}
}

// LearningRecordRepositoryImpl implements domain.LearningRecordRepository
// using GORM
type LearningRecordRepositoryImpl struct {
	db *gorm.DB
}

// NewLearningRecordRepository creates a new learning record repository
func NewLearningRecordRepository(db *gorm.DB) domain.LearningRecordRepository {
	return &LearningRecordRepositoryImpl{db: db}
}

// Upsert implements domain.LearningRecordRepository. The (user, course)
// pair is unique; re-reporting progress updates the existing row.
func (r *LearningRecordRepositoryImpl) Upsert(ctx context.Context, record *domain.LearningRecord) error {
	dbRecord := &DBLearningRecord{
		UserID:      record.UserID,
		CourseID:    record.CourseID,
		Progress:    record.Progress,
		CompletedAt: record.CompletedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress", "completed_at", "updated_at"}),
		}).
		Create(dbRecord).Error
	if err != nil {
		return err
	}
	record.ID = dbRecord.ID
	return nil
}

// ListByUser implements domain.LearningRecordRepository
func (r *LearningRecordRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*domain.LearningRecord, error) {
	var dbRecords []DBLearningRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("updated_at DESC").Find(&dbRecords).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.LearningRecord, 0, len(dbRecords))
	for i := range dbRecords {
		dbRecord := &dbRecords[i]
		record := &domain.LearningRecord{
			ID:          dbRecord.ID,
			UserID:      dbRecord.UserID,
			CourseID:    dbRecord.CourseID,
			Progress:    dbRecord.Progress,
			CompletedAt: dbRecord.CompletedAt,
			CreatedAt:   dbRecord.CreatedAt,
			UpdatedAt:   dbRecord.UpdatedAt,
		}
		var dbCourse DBCourse
		if err := r.db.WithContext(ctx).Where("id = ?", dbRecord.CourseID).First(&dbCourse).Error; err == nil {
			record.Course = courseToDomain(&dbCourse)
		}
		records = append(records, record)
	}
	return records, nil
}
