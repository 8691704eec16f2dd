package queue

import "context"

// QueueService mediates creation and retirement of queue entries,
// including the lazy player bootstrap a first join depends on.
type QueueService interface {
	// Join admits userID into bracketID's waiting queue. It fails with
	// a classified error when the bracket or user is missing, the
	// admission rules reject the user, or an active entry already
	// exists for the pair.
	Join(ctx context.Context, userID, bracketID string) (*JoinResult, error)
	// Leave retires every active entry for (user, bracket) and reports
	// how many were transitioned. More than one means a previously
	// broken uniqueness invariant was healed.
	Leave(ctx context.Context, userID, bracketID string) (*LeaveResult, error)
}
