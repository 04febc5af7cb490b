package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/dto"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
)

// ErrPreviewNotFound indicates the preview cache entry expired or was never
// created; the upload must be repeated.
var ErrPreviewNotFound = errors.New("preview entry not found or expired")

// ErrPreviewForeignSession indicates the preview entry belongs to a different
// session than the one attempting to consume it.
var ErrPreviewForeignSession = errors.New("preview entry belongs to another session")

// ImportService drives the CSV import pipeline: parse, resolve identities,
// link grades, hold the resolved batch for preview, and commit on save.
type ImportService interface {
	// Prepare parses and resolves raw CSV text, stores the batch under a fresh
	// upload key bound to the session, and returns the key with the batch.
	Prepare(ctx context.Context, sessionID, text string) (string, dto.ImportBatch, error)
	// Peek returns the cached batch without consuming it.
	Peek(ctx context.Context, sessionID, key string) (dto.ImportBatch, error)
	// Commit consumes the cached batch and upserts it as one logical import.
	Commit(ctx context.Context, sessionID, key string) (dto.ImportResult, error)
	// Cancel removes the cached batch without committing.
	Cancel(ctx context.Context, sessionID, key string) error
	// History returns the most recent import audit entries, newest first.
	History(ctx context.Context, limit int) ([]models.ImportLog, error)
}

type importService struct {
	db             *gorm.DB
	students       repository.StudentRepository
	grades         repository.GradeRepository
	importLogs     repository.ImportLogRepository
	parser         *CSVParser
	cache          *redis.Client
	previewTTL     time.Duration
	defaultClassID string
	logger         zerolog.Logger
	now            func() time.Time
}

// NewImportService constructs the import pipeline service.
func NewImportService(
	db *gorm.DB,
	students repository.StudentRepository,
	grades repository.GradeRepository,
	importLogs repository.ImportLogRepository,
	parser *CSVParser,
	cache *redis.Client,
	previewTTL time.Duration,
	defaultClassID string,
	logger zerolog.Logger,
) ImportService {
	return &importService{
		db:             db,
		students:       students,
		grades:         grades,
		importLogs:     importLogs,
		parser:         parser,
		cache:          cache,
		previewTTL:     previewTTL,
		defaultClassID: defaultClassID,
		logger:         logger.With().Str("component", "import_service").Logger(),
		now:            time.Now,
	}
}

func previewCacheKey(key string) string {
	return "import:preview:" + key
}

func (s *importService) Prepare(ctx context.Context, sessionID, text string) (string, dto.ImportBatch, error) {
	studentRows, gradeRows, err := s.parser.Parse(text)
	if err != nil {
		return "", dto.ImportBatch{}, err
	}

	resolved, err := s.resolveStudents(ctx, studentRows)
	if err != nil {
		return "", dto.ImportBatch{}, err
	}

	linked, unmatched := linkGrades(resolved, gradeRows)

	batch := dto.ImportBatch{
		SessionID:      sessionID,
		Students:       resolved,
		Grades:         linked,
		UnmatchedNames: unmatched,
	}

	key := uuid.NewString()
	payload, err := json.Marshal(batch)
	if err != nil {
		return "", dto.ImportBatch{}, err
	}
	if err := s.cache.Set(ctx, previewCacheKey(key), payload, s.previewTTL).Err(); err != nil {
		return "", dto.ImportBatch{}, fmt.Errorf("failed to store preview entry: %w", err)
	}

	s.logger.Info().
		Str("upload_key", key).
		Int("students", len(resolved)).
		Int("grades", len(linked)).
		Int("unmatched_grades", len(unmatched)).
		Msg("import batch prepared")

	return key, batch, nil
}

// resolveStudents maps each parsed row to a stable identifier. Existing
// students are matched by exact name; unmatched names receive strictly
// increasing identifiers above the current maximum `s<digits>` suffix.
func (s *importService) resolveStudents(ctx context.Context, rows []dto.StudentRow) ([]dto.ResolvedStudent, error) {
	maxID, err := s.students.MaxNumericID(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make([]dto.ResolvedStudent, 0, len(rows))
	for _, row := range rows {
		existing, err := s.students.FindFirstByName(ctx, row.Name)
		switch {
		case err == nil:
			resolved = append(resolved, dto.ResolvedStudent{Row: row, ID: existing.ID, Existing: true})
		case errors.Is(err, gorm.ErrRecordNotFound):
			maxID++
			resolved = append(resolved, dto.ResolvedStudent{Row: row, ID: fmt.Sprintf("s%d", maxID)})
		default:
			return nil, err
		}
	}

	return resolved, nil
}

// linkGrades joins grade rows to resolved student identifiers by name. Later
// duplicate names in the batch overwrite earlier mappings. Rows naming a
// student absent from the batch are excluded from the commit and reported as
// warnings, not errors.
func linkGrades(students []dto.ResolvedStudent, rows []dto.GradeRow) ([]dto.LinkedGrade, []string) {
	nameToID := make(map[string]string, len(students))
	for _, student := range students {
		nameToID[student.Row.Name] = student.ID
	}

	var linked []dto.LinkedGrade
	var unmatched []string
	for _, row := range rows {
		id, ok := nameToID[row.Name]
		if !ok {
			unmatched = append(unmatched, row.Name)
			continue
		}
		linked = append(linked, dto.LinkedGrade{Row: row, StudentID: id})
	}

	return linked, unmatched
}

func (s *importService) Peek(ctx context.Context, sessionID, key string) (dto.ImportBatch, error) {
	return s.fetchBatch(ctx, sessionID, key)
}

func (s *importService) Commit(ctx context.Context, sessionID, key string) (dto.ImportResult, error) {
	batch, err := s.fetchBatch(ctx, sessionID, key)
	if err != nil {
		return dto.ImportResult{}, err
	}

	// The entry is consumed whether or not the commit below reports row
	// errors; a failed row is reported, never retried.
	if err := s.cache.Del(ctx, previewCacheKey(key)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("upload_key", key).Msg("failed to delete preview entry")
	}

	result := s.commitBatch(ctx, batch)

	s.recordImportLog(ctx, batch, result)

	s.logger.Info().
		Str("upload_key", key).
		Int("added_students", result.AddedStudents).
		Int("updated_students", result.UpdatedStudents).
		Int("added_grades", result.AddedGrades).
		Int("errors", len(result.Errors)).
		Msg("import batch committed")

	return result, nil
}

func (s *importService) Cancel(ctx context.Context, sessionID, key string) error {
	if _, err := s.fetchBatch(ctx, sessionID, key); err != nil {
		return err
	}
	return s.cache.Del(ctx, previewCacheKey(key)).Err()
}

func (s *importService) History(ctx context.Context, limit int) ([]models.ImportLog, error) {
	return s.importLogs.List(ctx, limit)
}

func (s *importService) fetchBatch(ctx context.Context, sessionID, key string) (dto.ImportBatch, error) {
	payload, err := s.cache.Get(ctx, previewCacheKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dto.ImportBatch{}, ErrPreviewNotFound
		}
		return dto.ImportBatch{}, err
	}

	var batch dto.ImportBatch
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		return dto.ImportBatch{}, err
	}

	if batch.SessionID != sessionID {
		return dto.ImportBatch{}, ErrPreviewForeignSession
	}

	return batch, nil
}

// commitBatch upserts the batch as two independently committed phases:
// students first so grade rows can reference just-inserted identifiers, then
// grades. Each row runs in its own nested transaction (a savepoint on
// postgres), so a failing row rolls back alone instead of aborting the
// enclosing transaction and taking the phase's earlier rows with it.
func (s *importService) commitBatch(ctx context.Context, batch dto.ImportBatch) dto.ImportResult {
	result := dto.ImportResult{Errors: []string{}, Warnings: []string{}}

	importDate := s.now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, student := range batch.Students {
			err := tx.Transaction(func(rowTx *gorm.DB) error {
				return s.upsertStudent(rowTx, student, importDate)
			})
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("生徒 %s の保存に失敗: %v", student.Row.Name, err))
				continue
			}
			if student.Existing {
				result.UpdatedStudents++
			} else {
				result.AddedStudents++
			}
		}
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("生徒データの保存に失敗: %v", err))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, grade := range batch.Grades {
			var added bool
			err := tx.Transaction(func(rowTx *gorm.DB) error {
				var rowErr error
				added, rowErr = s.upsertGrade(rowTx, grade)
				return rowErr
			})
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("成績 %s のインポートに失敗: %v", grade.Row.Name, err))
				continue
			}
			if added {
				result.AddedGrades++
			}
		}
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("成績データの保存に失敗: %v", err))
	}

	for _, name := range batch.UnmatchedNames {
		result.Warnings = append(result.Warnings, fmt.Sprintf("成績 %s は生徒データに存在しないためスキップしました", name))
	}

	return result
}

func (s *importService) upsertStudent(tx *gorm.DB, student dto.ResolvedStudent, importDate time.Time) error {
	row := student.Row

	var existing models.Student
	err := tx.Where("id = ?", student.ID).First(&existing).Error
	switch {
	case err == nil:
		return tx.Model(&models.Student{}).Where("id = ?", student.ID).Updates(map[string]interface{}{
			"name":              row.Name,
			"name_kana":         row.NameKana,
			"classroom":         row.Classroom,
			"gender":            row.Gender,
			"high_school":       row.HighSchool,
			"course_subject":    row.CourseSubject,
			"school_class":      row.SchoolClass,
			"club":              row.Club,
			"target_university": row.TargetUniversity,
			"target_dept":       row.TargetDept,
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		classID := s.defaultClassID
		record := models.Student{
			ID:               student.ID,
			Classroom:        row.Classroom,
			Name:             row.Name,
			NameKana:         row.NameKana,
			Gender:           row.Gender,
			HighSchool:       row.HighSchool,
			CourseSubject:    row.CourseSubject,
			SchoolClass:      row.SchoolClass,
			Club:             row.Club,
			TargetUniversity: row.TargetUniversity,
			TargetDept:       row.TargetDept,
			ClassID:          &classID,
			JoinDate:         importDate,
		}
		return tx.Create(&record).Error
	default:
		return err
	}
}

// upsertGrade reports true when a new record was inserted; in-place score
// updates of an existing lesson count toward no bucket.
func (s *importService) upsertGrade(tx *gorm.DB, grade dto.LinkedGrade) (bool, error) {
	row := grade.Row

	var existing models.Grade
	err := tx.Where("student_id = ? AND date = ? AND lesson_number = ?", grade.StudentID, row.Date, row.LessonNumber).
		First(&existing).Error
	switch {
	case err == nil:
		return false, tx.Model(&models.Grade{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
			"score_comprehension": row.Comprehension,
			"score_unseen":        row.Unseen,
			"score_grammar":       row.Grammar,
			"score_vocabulary":    row.Vocabulary,
			"score_listening":     row.Listening,
			"score_total":         row.Total,
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		classID := s.defaultClassID
		record := models.Grade{
			ID:                 models.GradeID(grade.StudentID, row.Date, row.LessonNumber),
			StudentID:          grade.StudentID,
			ClassID:            &classID,
			Date:               row.Date,
			LessonNumber:       row.LessonNumber,
			LessonContent:      row.LessonContent,
			ScoreComprehension: row.Comprehension,
			ScoreUnseen:        row.Unseen,
			ScoreGrammar:       row.Grammar,
			ScoreVocabulary:    row.Vocabulary,
			ScoreListening:     row.Listening,
			ScoreTotal:         row.Total,
			MaxComprehension:   20,
			MaxUnseen:          20,
			MaxGrammar:         20,
			MaxVocabulary:      20,
			MaxListening:       20,
			MaxTotal:           100,
		}
		return true, tx.Create(&record).Error
	default:
		return false, err
	}
}

func (s *importService) recordImportLog(ctx context.Context, batch dto.ImportBatch, result dto.ImportResult) {
	if s.importLogs == nil {
		return
	}

	entry := models.ImportLog{
		AddedStudents:   result.AddedStudents,
		UpdatedStudents: result.UpdatedStudents,
		AddedGrades:     result.AddedGrades,
		ErrorCount:      len(result.Errors),
		WarningCount:    len(result.Warnings),
		Metadata: datatypes.JSONMap{
			"errors":          result.Errors,
			"warnings":        result.Warnings,
			"student_rows":    len(batch.Students),
			"grade_rows":      len(batch.Grades),
			"unmatched_names": batch.UnmatchedNames,
		},
	}
	if err := s.importLogs.Create(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record import log")
	}
}
