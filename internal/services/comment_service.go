package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"housingbuddy/internal/domain"
	"housingbuddy/internal/repos"
	"housingbuddy/internal/validate"
)

type CommentService struct {
	Comments *repos.CommentRepo
	Props    *PropertyService
	Now      func() time.Time
}

func NewCommentService(comments *repos.CommentRepo, props *PropertyService) *CommentService {
	return &CommentService{Comments: comments, Props: props, Now: time.Now}
}

type CommentInput struct {
	Content       string  `json:"content" validate:"required,max=2000"`
	AuthorContact *string `json:"authorContact" validate:"omitempty,max=100"`
	IsAdminOnly   bool    `json:"isAdminOnly"`
}

// CommentPatch updates only the fields that are set. Content, contact and
// visibility belong to the author; memo and reply belong to admins.
type CommentPatch struct {
	Content       *string `json:"content" validate:"omitempty,min=1,max=2000"`
	AuthorContact *string `json:"authorContact" validate:"omitempty,max=100"`
	IsAdminOnly   *bool   `json:"isAdminOnly"`
	AdminMemo     *string `json:"adminMemo" validate:"omitempty,max=2000"`
	AdminReply    *string `json:"adminReply" validate:"omitempty,max=2000"`
}

func (s *CommentService) List(propertyID int64, v Viewer) ([]domain.CommentView, error) {
	if _, err := s.Props.Get(propertyID); err != nil {
		return nil, err
	}
	cs, err := s.Comments.ListByProperty(propertyID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommentView, 0, len(cs))
	for _, c := range cs {
		out = append(out, ViewComment(c, v))
	}
	return out, nil
}

func (s *CommentService) Create(propertyID int64, v Viewer, in CommentInput) (domain.CommentView, error) {
	if v.UserID == "" {
		return domain.CommentView{}, ErrUnauthenticated
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := invalid(validate.Struct(in)); err != nil {
		return domain.CommentView{}, err
	}
	if _, err := s.Props.Get(propertyID); err != nil {
		return domain.CommentView{}, err
	}
	uid := v.UserID
	c := domain.Comment{
		PropertyID:    propertyID,
		UserID:        &uid,
		AuthorName:    v.Name,
		Content:       in.Content,
		AuthorContact: blankToNil(in.AuthorContact),
		IsAdminOnly:   in.IsAdminOnly,
	}
	if err := s.Comments.Create(&c, s.Now()); err != nil {
		return domain.CommentView{}, err
	}
	return ViewComment(c, v), nil
}

func (s *CommentService) Update(id int64, v Viewer, p CommentPatch) (domain.CommentView, error) {
	c, err := s.load(id)
	if err != nil {
		return domain.CommentView{}, err
	}
	author := c.AuthoredBy(v.UserID)
	if !author && !v.Admin {
		return domain.CommentView{}, ErrForbidden
	}
	if !v.Admin && (p.AdminMemo != nil || p.AdminReply != nil) {
		return domain.CommentView{}, ErrForbidden
	}
	if p.Content != nil {
		trimmed := strings.TrimSpace(*p.Content)
		p.Content = &trimmed
	}
	if err := invalid(validate.Struct(p)); err != nil {
		return domain.CommentView{}, err
	}

	if p.Content != nil {
		c.Content = *p.Content
	}
	if p.AuthorContact != nil {
		c.AuthorContact = blankToNil(p.AuthorContact)
	}
	if p.IsAdminOnly != nil {
		c.IsAdminOnly = *p.IsAdminOnly
	}
	if p.AdminMemo != nil {
		c.AdminMemo = *p.AdminMemo
	}
	if p.AdminReply != nil {
		c.AdminReply = *p.AdminReply
	}
	if err := s.Comments.Update(&c, s.Now()); err != nil {
		return domain.CommentView{}, err
	}
	return ViewComment(c, v), nil
}

// Delete soft-deletes a comment; allowed for its author and admins.
func (s *CommentService) Delete(id int64, v Viewer) error {
	c, err := s.load(id)
	if err != nil {
		return err
	}
	if !c.AuthoredBy(v.UserID) && !v.Admin {
		return ErrForbidden
	}
	ok, err := s.Comments.SoftDelete(id, s.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *CommentService) load(id int64) (domain.Comment, error) {
	c, err := s.Comments.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Comment{}, ErrNotFound
	}
	return c, err
}

// ViewComment strips what v may not see. Admins see everything; authors see
// their own comment except the admin memo; everyone else sees admin-only
// comments as a hidden placeholder and never sees contact details.
func ViewComment(c domain.Comment, v Viewer) domain.CommentView {
	mine := c.AuthoredBy(v.UserID)
	out := domain.CommentView{
		ID:          c.ID,
		PropertyID:  c.PropertyID,
		AuthorName:  c.AuthorName,
		IsAdminOnly: c.IsAdminOnly,
		Mine:        mine,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.IsAdminOnly && !v.Admin && !mine {
		out.Hidden = true
		return out
	}
	content := c.Content
	out.Content = &content
	if c.AdminReply != "" {
		reply := c.AdminReply
		out.AdminReply = &reply
	}
	if v.Admin || mine {
		out.AuthorContact = c.AuthorContact
	}
	if v.Admin {
		memo := c.AdminMemo
		out.AdminMemo = &memo
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
