package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/logger"
	"github.com/linkhive/socialgraph/common/pubsub"
)

// In-memory store fakes. They mirror the semantics of the pgx
// repositories, including the error mapping the services rely on.

type memberStoreFake struct {
	mu      sync.Mutex
	members map[uuid.UUID]*models.Member
}

func newMemberStoreFake() *memberStoreFake {
	return &memberStoreFake{members: make(map[uuid.UUID]*models.Member)}
}

func (f *memberStoreFake) Create(ctx context.Context, member *models.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	member.RefreshProfileComplete()
	member.CreatedAt = time.Now()
	clone := *member
	f.members[member.ID] = &clone
	return nil
}

func (f *memberStoreFake) Get(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[id]
	if !ok {
		return nil, models.NewNotFound("member", id)
	}
	clone := *member
	return &clone, nil
}

func (f *memberStoreFake) GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Member
	for _, id := range ids {
		if member, ok := f.members[id]; ok {
			clone := *member
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *memberStoreFake) ListOthers(ctx context.Context, exclude uuid.UUID) ([]*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Member
	for id, member := range f.members {
		if id == exclude {
			continue
		}
		clone := *member
		out = append(out, &clone)
	}
	return out, nil
}

func (f *memberStoreFake) UpdateProfile(ctx context.Context, member *models.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[member.ID]; !ok {
		return models.NewNotFound("member", member.ID)
	}
	member.RefreshProfileComplete()
	clone := *member
	f.members[member.ID] = &clone
	return nil
}

func (f *memberStoreFake) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[id]; !ok {
		return models.NewNotFound("member", id)
	}
	delete(f.members, id)
	return nil
}

type connectionStoreFake struct {
	mu    sync.Mutex
	edges map[uuid.UUID]*models.Connection
}

func newConnectionStoreFake() *connectionStoreFake {
	return &connectionStoreFake{edges: make(map[uuid.UUID]*models.Connection)}
}

func (f *connectionStoreFake) CreateEdge(ctx context.Context, authorID, recipientID uuid.UUID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.edges {
		if e.Involves(authorID) && e.Involves(recipientID) {
			return nil, &models.ConflictError{Reason: "connection already exists between these members"}
		}
	}
	conn := &models.Connection{
		ID:          uuid.New(),
		AuthorID:    authorID,
		RecipientID: recipientID,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	f.edges[conn.ID] = conn
	clone := *conn
	return &clone, nil
}

func (f *connectionStoreFake) Get(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conn, ok := f.edges[id]
	if !ok {
		return nil, models.NewNotFound("connection", id)
	}
	clone := *conn
	return &clone, nil
}

func (f *connectionStoreFake) SetAccepted(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conn, ok := f.edges[id]
	if !ok {
		return nil, models.NewNotFound("connection", id)
	}
	conn.Status = models.StatusAccepted
	conn.Seen = true
	clone := *conn
	return &clone, nil
}

func (f *connectionStoreFake) SetSeen(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conn, ok := f.edges[id]
	if !ok {
		return nil, models.NewNotFound("connection", id)
	}
	conn.Seen = true
	clone := *conn
	return &clone, nil
}

func (f *connectionStoreFake) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.edges[id]; !ok {
		return models.NewNotFound("connection", id)
	}
	delete(f.edges, id)
	return nil
}

func (f *connectionStoreFake) ListForMember(ctx context.Context, memberID uuid.UUID, status models.ConnectionStatus) ([]*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Connection
	for _, conn := range f.edges {
		if !conn.Involves(memberID) {
			continue
		}
		if status != "" && conn.Status != status {
			continue
		}
		clone := *conn
		out = append(out, &clone)
	}
	return out, nil
}

func (f *connectionStoreFake) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conn := range f.edges {
		if conn.Involves(a) && conn.Involves(b) {
			clone := *conn
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *connectionStoreFake) AcceptedNeighborIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uuid.UUID
	for _, conn := range f.edges {
		if conn.Status != models.StatusAccepted || !conn.Involves(memberID) {
			continue
		}
		out = append(out, conn.OtherEnd(memberID))
	}
	return out, nil
}

type notificationStoreFake struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*models.Notification
}

func newNotificationStoreFake() *notificationStoreFake {
	return &notificationStoreFake{notifications: make(map[uuid.UUID]*models.Notification)}
}

func (f *notificationStoreFake) Create(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	clone := *n
	f.notifications[n.ID] = &clone
	return nil
}

func (f *notificationStoreFake) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok {
		return nil, models.NewNotFound("notification", id)
	}
	clone := *n
	return &clone, nil
}

func (f *notificationStoreFake) MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok {
		return nil, models.NewNotFound("notification", id)
	}
	n.Read = true
	clone := *n
	return &clone, nil
}

func (f *notificationStoreFake) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

type postStoreFake struct {
	mu       sync.Mutex
	posts    map[uuid.UUID]*models.Post
	comments map[uuid.UUID]*models.Comment
	likes    map[uuid.UUID]map[uuid.UUID]struct{}
}

func newPostStoreFake() *postStoreFake {
	return &postStoreFake{
		posts:    make(map[uuid.UUID]*models.Post),
		comments: make(map[uuid.UUID]*models.Comment),
		likes:    make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (f *postStoreFake) CreatePost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *postStoreFake) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, models.NewNotFound("post", id)
	}
	clone := *post
	return &clone, nil
}

func (f *postStoreFake) UpdatePost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return models.NewNotFound("post", post.ID)
	}
	post.UpdatedAt = time.Now()
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *postStoreFake) DeletePost(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return models.NewNotFound("post", id)
	}
	delete(f.posts, id)
	delete(f.likes, id)
	for cid, c := range f.comments {
		if c.PostID == id {
			delete(f.comments, cid)
		}
	}
	return nil
}

func (f *postStoreFake) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Post
	for _, post := range f.posts {
		if post.AuthorID == authorID {
			clone := *post
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *postStoreFake) AddLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likes[postID] == nil {
		f.likes[postID] = make(map[uuid.UUID]struct{})
	}
	if _, ok := f.likes[postID][memberID]; ok {
		return false, nil
	}
	f.likes[postID][memberID] = struct{}{}
	return true, nil
}

func (f *postStoreFake) RemoveLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.likes[postID][memberID]; !ok {
		return false, nil
	}
	delete(f.likes[postID], memberID)
	return true, nil
}

func (f *postStoreFake) HasLike(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.likes[postID][memberID]
	return ok, nil
}

func (f *postStoreFake) ListLikerIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uuid.UUID
	for id := range f.likes[postID] {
		out = append(out, id)
	}
	return out, nil
}

func (f *postStoreFake) CreateComment(ctx context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *postStoreFake) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, models.NewNotFound("comment", id)
	}
	clone := *comment
	return &clone, nil
}

func (f *postStoreFake) UpdateComment(ctx context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[comment.ID]; !ok {
		return models.NewNotFound("comment", comment.ID)
	}
	comment.UpdatedAt = time.Now()
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *postStoreFake) DeleteComment(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return models.NewNotFound("comment", id)
	}
	delete(f.comments, id)
	return nil
}

func (f *postStoreFake) ListComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type conversationStoreFake struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*models.Conversation
	messages      map[uuid.UUID]*models.Message
}

func newConversationStoreFake() *conversationStoreFake {
	return &conversationStoreFake{
		conversations: make(map[uuid.UUID]*models.Conversation),
		messages:      make(map[uuid.UUID]*models.Message),
	}
}

func (f *conversationStoreFake) Create(ctx context.Context, authorID, recipientID uuid.UUID) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conversations {
		if c.Involves(authorID) && c.Involves(recipientID) {
			return nil, &models.ConflictError{Reason: "conversation already exists between these members"}
		}
	}
	conv := &models.Conversation{
		ID:          uuid.New(),
		AuthorID:    authorID,
		RecipientID: recipientID,
		CreatedAt:   time.Now(),
	}
	f.conversations[conv.ID] = conv
	clone := *conv
	return &clone, nil
}

func (f *conversationStoreFake) Get(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[id]
	if !ok {
		return nil, models.NewNotFound("conversation", id)
	}
	clone := *conv
	return &clone, nil
}

func (f *conversationStoreFake) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conversations {
		if c.Involves(a) && c.Involves(b) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *conversationStoreFake) ListForMember(ctx context.Context, memberID uuid.UUID) ([]*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Conversation
	for _, c := range f.conversations {
		if c.Involves(memberID) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *conversationStoreFake) CreateMessage(ctx context.Context, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = time.Now()
	clone := *msg
	f.messages[msg.ID] = &clone
	return nil
}

func (f *conversationStoreFake) GetMessage(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return nil, models.NewNotFound("message", id)
	}
	clone := *msg
	return &clone, nil
}

func (f *conversationStoreFake) MarkMessageRead(ctx context.Context, id uuid.UUID) (*models.Message, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return nil, false, models.NewNotFound("message", id)
	}
	changed := !msg.IsRead
	msg.IsRead = true
	clone := *msg
	return &clone, changed, nil
}

func (f *conversationStoreFake) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

// topicRecorder captures everything published through the dispatcher.
// The in-memory broker delivers synchronously, so after Flush every
// enqueued event is visible.
type topicRecorder struct {
	mu     sync.Mutex
	events map[string][][]byte
}

func newTopicRecorder(broker *pubsub.MemoryBroker) *topicRecorder {
	r := &topicRecorder{events: make(map[string][][]byte)}
	broker.SubscribePrefix("", func(topic string, payload []byte) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events[topic] = append(r.events[topic], payload)
	})
	return r
}

func (r *topicRecorder) count(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events[topic])
}

func (r *topicRecorder) last(topic string) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.events[topic]
	if len(events) == 0 {
		return nil
	}
	return events[len(events)-1]
}

// testEnv wires the services over fakes and an in-memory event channel
type testEnv struct {
	members       *memberStoreFake
	connections   *connectionStoreFake
	notifications *notificationStoreFake
	posts         *postStoreFake
	conversations *conversationStoreFake

	recorder   *topicRecorder
	dispatcher *pubsub.Dispatcher

	fanout    *FanoutService
	graph     *GraphService
	recommend *RecommendationService
	feed      *FeedService
	messaging *MessagingService
}

func newTestEnv() *testEnv {
	log := logger.New("error", "text")
	broker := pubsub.NewMemoryBroker(log)
	recorder := newTopicRecorder(broker)
	dispatcher := pubsub.NewDispatcher(broker, log, 1024)

	env := &testEnv{
		members:       newMemberStoreFake(),
		connections:   newConnectionStoreFake(),
		notifications: newNotificationStoreFake(),
		posts:         newPostStoreFake(),
		conversations: newConversationStoreFake(),
		recorder:      recorder,
		dispatcher:    dispatcher,
	}

	env.fanout = NewFanoutService(env.notifications, dispatcher, log)
	env.graph = NewGraphService(env.connections, env.members, env.fanout, log)
	env.recommend = NewRecommendationService(env.members, env.connections, nil, log)
	env.feed = NewFeedService(env.posts, env.connections, env.fanout, log)
	env.messaging = NewMessagingService(env.conversations, env.members, env.fanout, log)

	return env
}

func (e *testEnv) addMember(company, position, location string) *models.Member {
	member := &models.Member{
		ID:        uuid.New(),
		FirstName: "Test",
		LastName:  "Member",
		Company:   company,
		Position:  position,
		Location:  location,
	}
	_ = e.members.Create(context.Background(), member)
	return member
}

// connect creates an ACCEPTED edge directly in the store
func (e *testEnv) connect(a, b uuid.UUID) {
	conn, err := e.connections.CreateEdge(context.Background(), a, b)
	if err != nil {
		panic(err)
	}
	if _, err := e.connections.SetAccepted(context.Background(), conn.ID); err != nil {
		panic(err)
	}
}
