package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/logger"
)

// GraphService owns the connection-edge lifecycle. Every mutation
// commits first and only then hands the result to fanout.
type GraphService struct {
	connections ConnectionStore
	members     MemberStore
	fanout      *FanoutService
	log         *logger.Logger
}

// NewGraphService creates a new graph service
func NewGraphService(connections ConnectionStore, members MemberStore, fanout *FanoutService, log *logger.Logger) *GraphService {
	return &GraphService{
		connections: connections,
		members:     members,
		fanout:      fanout,
		log:         log,
	}
}

// SendRequest creates a PENDING edge from author to recipient. At most
// one edge may exist per member pair in either direction; a duplicate
// attempt fails with a ConflictError no matter which side initiated
// the existing edge.
func (s *GraphService) SendRequest(ctx context.Context, authorID, recipientID uuid.UUID) (*models.Connection, error) {
	if authorID == recipientID {
		return nil, &models.ValidationError{Field: "recipient_id", Reason: "cannot connect to self"}
	}

	if _, err := s.members.Get(ctx, authorID); err != nil {
		return nil, err
	}
	if _, err := s.members.Get(ctx, recipientID); err != nil {
		return nil, err
	}

	// The unique pair index makes this atomic against a concurrent
	// request from the opposite direction.
	conn, err := s.connections.CreateEdge(ctx, authorID, recipientID)
	if err != nil {
		return nil, err
	}

	s.log.Info("connection requested", "connection_id", conn.ID, "author", authorID, "recipient", recipientID)
	s.fanout.ConnectionRequested(conn)
	return conn, nil
}

// Accept transitions a pending edge to ACCEPTED. Only the recipient
// may accept.
func (s *GraphService) Accept(ctx context.Context, edgeID, actingMember uuid.UUID) (*models.Connection, error) {
	conn, err := s.connections.Get(ctx, edgeID)
	if err != nil {
		return nil, err
	}

	if conn.RecipientID != actingMember {
		return nil, &models.AuthorizationError{Action: "accept this connection"}
	}
	if conn.Status == models.StatusAccepted {
		return nil, &models.ConflictError{Reason: "connection is already accepted"}
	}

	conn, err = s.connections.SetAccepted(ctx, edgeID)
	if err != nil {
		return nil, err
	}

	s.log.Info("connection accepted", "connection_id", conn.ID)
	s.fanout.ConnectionAccepted(conn)
	return conn, nil
}

// RemoveOrReject deletes an edge. Either party may do so at any time:
// the recipient rejecting a pending request, the author cancelling it,
// or either side severing an accepted connection. Returns the edge as
// it existed before deletion.
func (s *GraphService) RemoveOrReject(ctx context.Context, edgeID, actingMember uuid.UUID) (*models.Connection, error) {
	conn, err := s.connections.Get(ctx, edgeID)
	if err != nil {
		return nil, err
	}

	if !conn.Involves(actingMember) {
		return nil, &models.AuthorizationError{Action: "remove this connection"}
	}

	if err := s.connections.Delete(ctx, edgeID); err != nil {
		return nil, err
	}

	s.log.Info("connection removed", "connection_id", conn.ID, "status", conn.Status)
	s.fanout.ConnectionRemoved(conn)
	return conn, nil
}

// MarkSeen marks an incoming request as seen by its recipient.
// Idempotent.
func (s *GraphService) MarkSeen(ctx context.Context, edgeID, actingMember uuid.UUID) (*models.Connection, error) {
	conn, err := s.connections.Get(ctx, edgeID)
	if err != nil {
		return nil, err
	}

	if conn.RecipientID != actingMember {
		return nil, &models.AuthorizationError{Action: "mark this connection seen"}
	}

	conn, err = s.connections.SetSeen(ctx, edgeID)
	if err != nil {
		return nil, err
	}

	s.fanout.ConnectionSeen(conn)
	return conn, nil
}

// ListForMember retrieves a member's edges filtered by status. An
// empty filter means ACCEPTED.
func (s *GraphService) ListForMember(ctx context.Context, memberID uuid.UUID, status models.ConnectionStatus) ([]*models.Connection, error) {
	if status == "" {
		status = models.StatusAccepted
	}
	return s.connections.ListForMember(ctx, memberID, status)
}

// ExistsBetween reports whether an edge exists between two members in
// either direction.
func (s *GraphService) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	conn, err := s.connections.GetBetween(ctx, a, b)
	if err != nil {
		return false, err
	}
	return conn != nil, nil
}
