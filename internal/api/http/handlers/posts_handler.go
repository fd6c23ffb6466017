package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/dto"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/service"
)

// PostsHandler exposes post and comment endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// Create handles POST /posts (member only).
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CommunityID == "" || req.Title == "" {
		return fiber.NewError(http.StatusBadRequest, "community_id and title required")
	}

	post, err := h.posts.Create(c.UserContext(), *actor, service.PostCreateInput{
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": postBody(post)})
}

// Get handles GET /posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	view, err := h.posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	body := postBody(&view.Post)
	body["score"] = view.Score
	return c.JSON(fiber.Map{"data": body})
}

// ListByCommunity handles GET /communities/:id/posts.
func (h *PostsHandler) ListByCommunity(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	posts, err := h.posts.ListByCommunity(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(posts))
	for i := range posts {
		items = append(items, postBody(&posts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update handles PATCH /posts/:id (author only).
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.posts.Update(c.UserContext(), *actor, c.Params("id"), req.Title, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postBody(post)})
}

// Delete handles DELETE /posts/:id (author or admin).
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.posts.Delete(c.UserContext(), *actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateComment handles POST /posts/:id/comments (member only).
func (h *PostsHandler) CreateComment(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CommentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Body == "" {
		return fiber.NewError(http.StatusBadRequest, "body required")
	}

	comment, err := h.posts.CreateComment(c.UserContext(), *actor, c.Params("id"), req.ParentID, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentBody(comment)})
}

// ListComments handles GET /posts/:id/comments.
func (h *PostsHandler) ListComments(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	comments, err := h.posts.ListComments(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(comments))
	for i := range comments {
		items = append(items, commentBody(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteComment handles DELETE /comments/:id (author or admin).
func (h *PostsHandler) DeleteComment(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.posts.DeleteComment(c.UserContext(), *actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func postBody(post *domain.Post) fiber.Map {
	return fiber.Map{
		"id":           post.ID,
		"community_id": post.CommunityID,
		"author_id":    post.AuthorID,
		"title":        post.Title,
		"body":         post.Body,
		"created_at":   post.CreatedAt,
		"updated_at":   post.UpdatedAt,
	}
}

func commentBody(comment *domain.Comment) fiber.Map {
	return fiber.Map{
		"id":         comment.ID,
		"post_id":    comment.PostID,
		"parent_id":  comment.ParentID,
		"author_id":  comment.AuthorID,
		"body":       comment.Body,
		"created_at": comment.CreatedAt,
	}
}
