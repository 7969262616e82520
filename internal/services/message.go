package services

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/apierr"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

const defaultMessagePageSize = 20

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ListMessagesInput struct {
	IsRead *bool
	Page   int
	Limit  int
}

type MessageList struct {
	Messages   []*types.Message `json:"messages"`
	Pagination types.Pagination `json:"pagination"`
}

type CreateMessageInput struct {
	StudentName string `json:"student_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Content     string `json:"content"`
}

type UpdateMessageInput struct {
	StudentName *string `json:"student_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Content     *string `json:"content"`
}

type MessageService interface {
	List(ctx context.Context, in ListMessagesInput) (*MessageList, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Message, error)
	Create(ctx context.Context, in CreateMessageInput) (*types.Message, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateMessageInput) (*types.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkRead(ctx context.Context, id uuid.UUID) (*types.Message, error)
}

type messageService struct {
	db          *gorm.DB
	log         *logger.Logger
	messageRepo repos.MessageRepo
}

func NewMessageService(db *gorm.DB, log *logger.Logger, messageRepo repos.MessageRepo) MessageService {
	return &messageService{
		db:          db,
		log:         log.With("service", "MessageService"),
		messageRepo: messageRepo,
	}
}

func (ms *messageService) List(ctx context.Context, in ListMessagesInput) (*MessageList, error) {
	page, limit := normalizePage(in.Page, in.Limit, defaultMessagePageSize)
	messages, total, err := ms.messageRepo.List(ctx, repos.MessageFilter{
		IsRead: in.IsRead,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*types.Message{}
	}
	return &MessageList{
		Messages:   messages,
		Pagination: types.NewPagination(page, limit, total),
	}, nil
}

func (ms *messageService) Get(ctx context.Context, id uuid.UUID) (*types.Message, error) {
	message, err := ms.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Message not found")
	}
	return message, nil
}

func (ms *messageService) Create(ctx context.Context, in CreateMessageInput) (*types.Message, error) {
	if in.StudentName == "" || in.Content == "" {
		return nil, apierr.Validation("Student name and content are required")
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		return nil, apierr.Validation("Invalid email format")
	}
	message := &types.Message{
		ID:          uuid.New(),
		StudentName: in.StudentName,
		Phone:       in.Phone,
		Email:       in.Email,
		Content:     in.Content,
		IsRead:      false,
	}
	return ms.messageRepo.Create(ctx, message)
}

func (ms *messageService) Update(ctx context.Context, id uuid.UUID, in UpdateMessageInput) (*types.Message, error) {
	fields := map[string]interface{}{}
	if in.StudentName != nil {
		fields["student_name"] = *in.StudentName
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Email != nil {
		if *in.Email != "" && !emailPattern.MatchString(*in.Email) {
			return nil, apierr.Validation("Invalid email format")
		}
		fields["email"] = *in.Email
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if len(fields) == 0 {
		return ms.Get(ctx, id)
	}
	message, err := ms.messageRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, notFound(err, "Message not found")
	}
	return message, nil
}

func (ms *messageService) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(ms.messageRepo.Delete(ctx, id), "Message not found")
}

func (ms *messageService) MarkRead(ctx context.Context, id uuid.UUID) (*types.Message, error) {
	message, err := ms.messageRepo.MarkRead(ctx, id)
	if err != nil {
		return nil, notFound(err, "Message not found")
	}
	return message, nil
}
