package services

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	course "vibelms/models/course"

	"gorm.io/gorm"
)

// ProgressService maintains the per-lesson activity ledger and the derived
// enrollment snapshot. It is the only writer of Enrollment.ProgressPercent
// and Enrollment.Status; both are updated in the same transaction as the
// Progress write so a reader never sees them disagree.
type ProgressService struct {
	DB *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{
		DB:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

// ActivityInput carries one lesson activity report. Nil fields mean "not
// provided": Completed and Score only overwrite when set, TimeSpentSeconds
// accumulates onto the stored total.
type ActivityInput struct {
	ModuleUID        string
	LessonUID        string
	Completed        *bool
	Score            *float64
	TimeSpentSeconds *int64
}

// lockFor serializes writes per (user, course) pair. Two concurrent reports
// for the same pair would otherwise race on the read-modify-write of the
// activity record and lose an update.
func (s *ProgressService) lockFor(userID, courseID uint) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", userID, courseID)

	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// ReportActivity upserts the activity record for (moduleUID, lessonUID),
// recomputes the overall completion percent against the course's current
// lesson count and updates the enrollment snapshot, all in one transaction.
func (s *ProgressService) ReportActivity(userID, courseID uint, in ActivityInput) (*course.Progress, error) {
	var crs course.Course
	if err := s.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var inCourse int64
	err := s.DB.Model(&course.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id AND modules.deleted_at IS NULL").
		Where("modules.course_id = ? AND modules.uid = ? AND lessons.uid = ?", courseID, in.ModuleUID, in.LessonUID).
		Count(&inCourse).Error
	if err != nil {
		return nil, err
	}
	if inCourse == 0 {
		return nil, ErrLessonNotFound
	}

	lock := s.lockFor(userID, courseID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	var prog course.Progress

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&prog).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			prog = course.Progress{UserID: userID, CourseID: courseID}
			if err := tx.Create(&prog).Error; err != nil {
				return err
			}
		}

		var rec course.ActivityRecord
		if err := tx.Where("progress_id = ? AND module_uid = ? AND lesson_uid = ?", prog.ID, in.ModuleUID, in.LessonUID).First(&rec).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			rec = course.ActivityRecord{
				ProgressID: prog.ID,
				ModuleUID:  in.ModuleUID,
				LessonUID:  in.LessonUID,
			}
		}

		if in.Completed != nil {
			rec.Completed = *in.Completed
		}
		if in.Score != nil {
			rec.Score = in.Score
		}
		if in.TimeSpentSeconds != nil {
			rec.TimeSpentSeconds += *in.TimeSpentSeconds
			if rec.TimeSpentSeconds < 0 {
				rec.TimeSpentSeconds = 0
			}
		}
		rec.LastVisitedAt = now

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}

		percent, err := completionPercent(tx, courseID, prog.ID)
		if err != nil {
			return err
		}

		prog.OverallPercent = percent
		prog.LastModuleUID = in.ModuleUID
		prog.LastLessonUID = in.LessonUID
		visited := now
		prog.LastVisitedAt = &visited
		if err := tx.Save(&prog).Error; err != nil {
			return err
		}

		return upsertEnrollmentSnapshot(tx, userID, courseID, percent, now)
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Records").First(&prog, prog.ID).Error; err != nil {
		return nil, err
	}
	return &prog, nil
}

// GetProgress returns the ledger for (userID, courseID). A user who has
// never reported activity gets an empty ledger, not an error.
func (s *ProgressService) GetProgress(userID, courseID uint) (*course.Progress, error) {
	var prog course.Progress
	err := s.DB.Preload("Records").Where("user_id = ? AND course_id = ?", userID, courseID).First(&prog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &course.Progress{
				UserID:   userID,
				CourseID: courseID,
				Records:  []course.ActivityRecord{},
			}, nil
		}
		return nil, err
	}
	return &prog, nil
}

// Enroll creates an enrollment for (userID, courseID). Enrolling again is a
// no-op that returns the existing record untouched. Draft courses are
// invisible unless canSeeDrafts is set, and invisibility reads as NotFound
// so draft existence does not leak.
func (s *ProgressService) Enroll(userID, courseID uint, canSeeDrafts bool) (*course.Enrollment, bool, error) {
	var crs course.Course
	if err := s.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCourseNotFound
		}
		return nil, false, err
	}
	if !crs.IsPublished && !canSeeDrafts && crs.OwnerID != userID {
		return nil, false, ErrCourseNotFound
	}

	var existing course.Enrollment
	err := s.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	enrollment := course.Enrollment{
		UserID:    userID,
		CourseID:  courseID,
		Status:    course.EnrollmentActive,
		StartedAt: time.Now(),
	}
	if err := s.DB.Create(&enrollment).Error; err != nil {
		return nil, false, err
	}
	return &enrollment, true, nil
}

// MyEnrollments lists the user's enrollments, most recent first.
func (s *ProgressService) MyEnrollments(userID uint) ([]course.Enrollment, error) {
	var enrollments []course.Enrollment
	err := s.DB.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

// completionPercent derives round(100 * completed / total) from the current
// course shape. Both sides are counted at call time against the live lesson
// tree: records for lessons an edit has since removed count for neither, so
// the result stays in [0,100] after the course shrinks.
func completionPercent(tx *gorm.DB, courseID, progressID uint) (int, error) {
	var total int64
	err := tx.Model(&course.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id AND modules.deleted_at IS NULL").
		Where("modules.course_id = ?", courseID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var completed int64
	err = tx.Model(&course.ActivityRecord{}).
		Joins("JOIN lessons ON lessons.uid = activity_records.lesson_uid AND lessons.deleted_at IS NULL").
		Joins("JOIN modules ON modules.id = lessons.module_id AND modules.uid = activity_records.module_uid AND modules.deleted_at IS NULL").
		Where("activity_records.progress_id = ? AND activity_records.completed = ? AND modules.course_id = ?", progressID, true, courseID).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}

	return int(math.Round(float64(completed) * 100 / float64(total))), nil
}

func upsertEnrollmentSnapshot(tx *gorm.DB, userID, courseID uint, percent int, now time.Time) error {
	var enrollment course.Enrollment
	if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		enrollment = course.Enrollment{
			UserID:    userID,
			CourseID:  courseID,
			StartedAt: now,
		}
	}

	enrollment.ProgressPercent = percent
	if percent >= 100 {
		enrollment.Status = course.EnrollmentCompleted
		// only set on the transition into 100%, never overwritten after
		if enrollment.CompletedAt == nil {
			completed := now
			enrollment.CompletedAt = &completed
		}
	} else {
		enrollment.Status = course.EnrollmentActive
	}

	return tx.Save(&enrollment).Error
}
