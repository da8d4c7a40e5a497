package repository

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/truledger/loanboard/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate applies the schema file. Statements are idempotent, so running it
// on every start is safe.
func (r *Repository) Migrate(schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := r.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query, user.ID, user.Username, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Users retrieves all users
func (r *Repository) Users() ([]models.User, error) {
	rows, err := r.db.Query(`SELECT id, username, email, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// OwnerScope resolves the data scope for a user: the inviting owner's id when
// the user is a team member, the user's own id otherwise.
func (r *Repository) OwnerScope(userID string) (string, error) {
	var ownerID string
	query := `SELECT owner_id FROM team_members WHERE member_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return userID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve owner scope: %w", err)
	}
	return ownerID, nil
}

// TeamMembers retrieves an owner's invited members
func (r *Repository) TeamMembers(ownerID string) ([]models.TeamMember, error) {
	rows, err := r.db.Query(`
		SELECT owner_id, email, COALESCE(member_id::text, ''), created_at
		FROM team_members
		WHERE owner_id = $1
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.OwnerID, &m.Email, &m.MemberID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddTeamMember invites an email into the owner's data scope. The member id
// is linked when a user with that email exists.
func (r *Repository) AddTeamMember(m *models.TeamMember) error {
	query := `
		INSERT INTO team_members (owner_id, email, member_id, created_at)
		VALUES ($1, $2, (SELECT id FROM users WHERE email = $2), CURRENT_TIMESTAMP)
		RETURNING COALESCE(member_id::text, ''), created_at`
	err := r.db.QueryRow(query, m.OwnerID, m.Email).Scan(&m.MemberID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

// RemoveTeamMember removes an invitation by owner and email
func (r *Repository) RemoveTeamMember(ownerID, email string) error {
	if _, err := r.db.Exec(`DELETE FROM team_members WHERE owner_id = $1 AND email = $2`, ownerID, email); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return nil
}
