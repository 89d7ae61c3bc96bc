package repository

import (
	"database/sql"
	"fmt"

	"sportiq/internal/database"
	"sportiq/internal/generator"
	"sportiq/internal/models"
)

// ListOptions controls pagination and sorting of a user's module listing
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string // created_at, difficulty or status
	SortOrder string // asc or desc
}

// sortColumns whitelists the sortable columns; anything else falls back to
// created_at
var sortColumns = map[string]string{
	"created_at": "cm.created_at",
	"difficulty": "cm.difficulty",
	"status":     "um.status",
}

// ModuleRepository handles learning module database operations
type ModuleRepository struct {
	db *database.DB
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *database.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// CreateWithContent inserts the module row, its flashcards and questions,
// and the creator's user-module link in a single transaction. A failure at
// any step rolls everything back so no orphaned module row remains.
func (r *ModuleRepository) CreateWithContent(module *models.Module, content *generator.Result) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	moduleID, err := tx.ExecReturningID(`
		INSERT INTO custom_modules (title, topic, concept, difficulty, sport, num_questions, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, "module_id",
		module.Title,
		module.Topic,
		module.Concept,
		module.Difficulty,
		module.Sport,
		len(content.Questions),
		module.CreatorID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create module: %w", err)
	}

	for i, card := range content.Flashcards {
		_, err := tx.Exec(`
			INSERT INTO flashcards (module_id, term, definition, order_index)
			VALUES (?, ?, ?, ?)
		`, moduleID, card.Term, card.Definition, i)
		if err != nil {
			return 0, fmt.Errorf("failed to create flashcard: %w", err)
		}
	}

	for i, q := range content.Questions {
		_, err := tx.Exec(`
			INSERT INTO questions (module_id, content, option1, option2, option3, option4, correct_option_index, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, moduleID, q.Prompt, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectOptionIndex, i)
		if err != nil {
			return 0, fmt.Errorf("failed to create question: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO user_modules (user_id, module_id, status)
		VALUES (?, ?, ?)
	`, module.CreatorID, moduleID, false)
	if err != nil {
		return 0, fmt.Errorf("failed to create user module link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit module creation: %w", err)
	}

	return moduleID, nil
}

// GetModule retrieves a module row by ID. Returns nil when not found.
func (r *ModuleRepository) GetModule(moduleID int64) (*models.Module, error) {
	query := `
		SELECT module_id, title, topic, concept, difficulty, sport, num_questions, user_id, created_at
		FROM custom_modules
		WHERE module_id = ?
	`

	module := &models.Module{}
	err := r.db.QueryRow(query, moduleID).Scan(
		&module.ModuleID,
		&module.Title,
		&module.Topic,
		&module.Concept,
		&module.Difficulty,
		&module.Sport,
		&module.NumQuestions,
		&module.CreatorID,
		&module.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	return module, nil
}

// GetFlashcards retrieves a module's flashcards in study order
func (r *ModuleRepository) GetFlashcards(moduleID int64) ([]models.Flashcard, error) {
	query := `
		SELECT flashcard_id, module_id, term, definition, order_index
		FROM flashcards
		WHERE module_id = ?
		ORDER BY order_index ASC
	`

	rows, err := r.db.Query(query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query flashcards: %w", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var card models.Flashcard
		if err := rows.Scan(
			&card.FlashcardID,
			&card.ModuleID,
			&card.Term,
			&card.Definition,
			&card.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("failed to scan flashcard: %w", err)
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// GetQuestions retrieves a module's questions in study order
func (r *ModuleRepository) GetQuestions(moduleID int64) ([]models.Question, error) {
	query := `
		SELECT question_id, module_id, content, option1, option2, option3, option4, correct_option_index, order_index
		FROM questions
		WHERE module_id = ?
		ORDER BY order_index ASC
	`

	rows, err := r.db.Query(query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(
			&q.QuestionID,
			&q.ModuleID,
			&q.Content,
			&q.Option1,
			&q.Option2,
			&q.Option3,
			&q.Option4,
			&q.CorrectOptionIndex,
			&q.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// GetUserModule retrieves a user's link to a module. Returns nil when the
// module is not in the user's library.
func (r *ModuleRepository) GetUserModule(userID string, moduleID int64) (*models.UserModule, error) {
	query := "SELECT user_id, module_id, status FROM user_modules WHERE user_id = ? AND module_id = ?"

	link := &models.UserModule{}
	err := r.db.QueryRow(query, userID, moduleID).Scan(&link.UserID, &link.ModuleID, &link.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user module: %w", err)
	}

	return link, nil
}

// UpsertUserModule creates the user-module link if missing, otherwise
// updates its status
func (r *ModuleRepository) UpsertUserModule(userID string, moduleID int64, status bool) error {
	result, err := r.db.Exec(`
		UPDATE user_modules SET status = ? WHERE user_id = ? AND module_id = ?
	`, status, userID, moduleID)
	if err != nil {
		return fmt.Errorf("failed to update user module: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(`
		INSERT INTO user_modules (user_id, module_id, status) VALUES (?, ?, ?)
	`, userID, moduleID, status)
	if err != nil {
		return fmt.Errorf("failed to insert user module: %w", err)
	}
	return nil
}

// DeleteUserModule removes a module from a user's library
func (r *ModuleRepository) DeleteUserModule(userID string, moduleID int64) error {
	_, err := r.db.Exec("DELETE FROM user_modules WHERE user_id = ? AND module_id = ?", userID, moduleID)
	if err != nil {
		return fmt.Errorf("failed to delete user module: %w", err)
	}
	return nil
}

// CountUserModules returns the number of modules in a user's library
func (r *ModuleRepository) CountUserModules(userID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM user_modules WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count user modules: %w", err)
	}
	return count, nil
}

// ListUserModules returns one page of a user's modules joined with
// completion status and creator attribution
func (r *ModuleRepository) ListUserModules(userID string, opts ListOptions) ([]models.ModuleSummary, error) {
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = sortColumns["created_at"]
	}
	direction := "DESC"
	if opts.SortOrder == "asc" {
		direction = "ASC"
	}

	offset := (opts.Page - 1) * opts.Limit

	query := fmt.Sprintf(`
		SELECT cm.module_id, cm.title, cm.topic, cm.concept, cm.difficulty, cm.created_at,
		       COALESCE(up.username, 'Unknown User'), um.status
		FROM user_modules um
		JOIN custom_modules cm ON cm.module_id = um.module_id
		LEFT JOIN user_profiles up ON up.user_id = cm.user_id
		WHERE um.user_id = ?
		ORDER BY %s %s
		LIMIT ? OFFSET ?
	`, column, direction)

	rows, err := r.db.Query(query, userID, opts.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query user modules: %w", err)
	}
	defer rows.Close()

	var summaries []models.ModuleSummary
	for rows.Next() {
		var s models.ModuleSummary
		if err := rows.Scan(
			&s.ModuleID,
			&s.Title,
			&s.Topic,
			&s.Concept,
			&s.Difficulty,
			&s.CreatedAt,
			&s.CreatorUsername,
			&s.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan module summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// SearchByTitle finds modules whose title matches the keywords,
// case-insensitively
func (r *ModuleRepository) SearchByTitle(keywords string, limit int) ([]models.Module, error) {
	query := `
		SELECT module_id, title, topic, concept, difficulty, sport, num_questions, user_id, created_at
		FROM custom_modules
		WHERE LOWER(title) LIKE LOWER(?)
		LIMIT ?
	`

	rows, err := r.db.Query(query, "%"+keywords+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(
			&m.ModuleID,
			&m.Title,
			&m.Topic,
			&m.Concept,
			&m.Difficulty,
			&m.Sport,
			&m.NumQuestions,
			&m.CreatorID,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, m)
	}

	return modules, rows.Err()
}
