package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.start_date, lr.end_date, lr.reason, lr.type, lr.status,
	lr.reviewed_by, lr.reviewed_at, lr.created_at, lr.updated_at,
	u.name, u.email`

const leaveRequestFrom = `
	FROM leave_requests lr
	LEFT JOIN users u ON u.id = lr.user_id`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func leaveRequestDest(lr *leave.LeaveRequest) []any {
	return []any{
		&lr.ID,
		&lr.UserID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Type,
		&lr.Status,
		&lr.ReviewedBy,
		&lr.ReviewedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.UserName,
		&lr.UserEmail,
	}
}

func scanLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(leaveRequestDest(&lr)...); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (user_id, start_date, end_date, reason, type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.UserID, request.StartDate, request.EndDate,
		request.Reason, request.Type, string(request.Status),
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, `SELECT `+leaveRequestColumns+leaveRequestFrom+` WHERE lr.id = $1`, id).
		Scan(leaveRequestDest(&req)...)
	if err != nil {
		if isNotFound(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.UserID != nil {
		whereClause += fmt.Sprintf(" AND lr.user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests lr `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY lr.created_at DESC LIMIT $%d OFFSET $%d`,
		leaveRequestColumns, leaveRequestFrom, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	requests, err := scanLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+leaveRequestColumns+leaveRequestFrom+`
		WHERE lr.status = 'pending'
		ORDER BY lr.created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return scanLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListApprovedByUsers(ctx context.Context, userIDs []string) ([]leave.LeaveRequest, error) {
	if len(userIDs) == 0 {
		return []leave.LeaveRequest{}, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+leaveRequestColumns+leaveRequestFrom+`
		WHERE lr.status = 'approved' AND lr.user_id = ANY($1::uuid[])`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	return scanLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, reviewedBy string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $3
	`, string(status), reviewedBy, id)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *leaveRequestRepositoryImpl) CountByStatus(ctx context.Context) (map[leave.Status]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM leave_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count leave requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[leave.Status]int64, 3)
	for rows.Next() {
		var status leave.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *leaveRequestRepositoryImpl) CountStartingBetween(ctx context.Context, from, to string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM leave_requests WHERE start_date >= $1::date AND start_date < $2::date
	`, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests in range: %w", err)
	}
	return n, nil
}
