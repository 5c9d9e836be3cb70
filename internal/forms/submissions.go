package forms

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// Story is a story submitted through the "share your story" form.
type Story struct {
	Lang     string `json:"lang"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Date     string `json:"date"`
}

func (s *Story) Prepare(partial bool) (content.Entity, error) {
	s.Title = cleanText(s.Title)
	s.Excerpt = cleanText(s.Excerpt)
	s.Content = cleanRich(s.Content)
	s.Author = cleanText(s.Author)
	s.Email = cleanText(s.Email)
	s.Category = cleanText(s.Category)

	err := validation.ValidateStruct(s,
		validation.Field(&s.Lang, validation.In(supportedLangs...).Error("lang_unsupported")),
		validation.Field(&s.Title, required(partial, "title_required"), validation.RuneLength(0, maxTitle).Error("title_too_long")),
		validation.Field(&s.Excerpt, validation.RuneLength(0, maxExcerpt).Error("excerpt_too_long")),
		validation.Field(&s.Content, required(partial, "content_required"), validation.RuneLength(0, maxText).Error("content_too_long")),
		validation.Field(&s.Author, required(partial, "author_required"), validation.RuneLength(0, maxName).Error("author_too_long")),
		validation.Field(&s.Email, is.Email.Error("invalid_email_format")),
		validation.Field(&s.Image, validation.By(imageRef), validation.RuneLength(0, maxURL).Error("image_too_long")),
		validation.Field(&s.Date, validation.Date("2006-01-02").Error("invalid_date")),
	)
	if err != nil {
		return content.Entity{}, asValidationError(err)
	}

	e := entity(s.Lang, content.Translation{
		"title":   s.Title,
		"excerpt": s.Excerpt,
		"content": s.Content,
		"author":  s.Author,
	})
	e.Category = s.Category
	e.Date = s.Date
	setAttr(&e, "email", s.Email)
	setAttr(&e, "image", s.Image)
	return e, nil
}

// Testimonial is a visitor testimonial.
type Testimonial struct {
	Lang     string `json:"lang"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

func (t *Testimonial) Prepare(partial bool) (content.Entity, error) {
	t.Author = cleanText(t.Author)
	t.Content = cleanRich(t.Content)
	t.Location = cleanText(t.Location)
	t.Email = cleanText(t.Email)
	t.Category = cleanText(t.Category)

	err := validation.ValidateStruct(t,
		validation.Field(&t.Lang, validation.In(supportedLangs...).Error("lang_unsupported")),
		validation.Field(&t.Author, required(partial, "author_required"), validation.RuneLength(0, maxName).Error("author_too_long")),
		validation.Field(&t.Content, required(partial, "content_required"), validation.RuneLength(0, maxText).Error("content_too_long")),
		validation.Field(&t.Location, validation.RuneLength(0, maxName).Error("location_too_long")),
		validation.Field(&t.Email, is.Email.Error("invalid_email_format")),
	)
	if err != nil {
		return content.Entity{}, asValidationError(err)
	}

	e := entity(t.Lang, content.Translation{
		"author":  t.Author,
		"content": t.Content,
	})
	e.Category = t.Category
	setAttr(&e, "location", t.Location)
	setAttr(&e, "email", t.Email)
	return e, nil
}

// Postcard is a virtual postcard composed over one of the base images.
type Postcard struct {
	Lang      string `json:"lang"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Recipient string `json:"recipient"`
	BaseID    string `json:"baseId"`
	Image     string `json:"image"`
	Category  string `json:"category"`
}

func (p *Postcard) Prepare(partial bool) (content.Entity, error) {
	p.Title = cleanText(p.Title)
	p.Message = cleanRich(p.Message)
	p.Author = cleanText(p.Author)
	p.Recipient = cleanText(p.Recipient)
	p.Category = cleanText(p.Category)

	err := validation.ValidateStruct(p,
		validation.Field(&p.Lang, validation.In(supportedLangs...).Error("lang_unsupported")),
		validation.Field(&p.Title, validation.RuneLength(0, maxTitle).Error("title_too_long")),
		validation.Field(&p.Message, required(partial, "message_required"), validation.RuneLength(0, maxExcerpt).Error("message_too_long")),
		validation.Field(&p.Author, required(partial, "author_required"), validation.RuneLength(0, maxName).Error("author_too_long")),
		validation.Field(&p.Recipient, validation.RuneLength(0, maxName).Error("recipient_too_long")),
		validation.Field(&p.Image, validation.When(p.BaseID == "", required(partial, "image_required")), validation.By(imageRef), validation.RuneLength(0, maxURL).Error("image_too_long")),
	)
	if err != nil {
		return content.Entity{}, asValidationError(err)
	}

	e := entity(p.Lang, content.Translation{
		"title":   p.Title,
		"content": p.Message,
		"author":  p.Author,
	})
	e.Category = p.Category
	setAttr(&e, "recipient", p.Recipient)
	setAttr(&e, "baseId", p.BaseID)
	setAttr(&e, "image", p.Image)
	return e, nil
}

// Community is a festival community registered on the map.
type Community struct {
	Lang        string `json:"lang"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	Contact     string `json:"contact"`
}

func (c *Community) Prepare(partial bool) (content.Entity, error) {
	c.Name = cleanText(c.Name)
	c.Description = cleanRich(c.Description)
	c.Location = cleanText(c.Location)
	c.Contact = cleanText(c.Contact)

	err := validation.ValidateStruct(c,
		validation.Field(&c.Lang, validation.In(supportedLangs...).Error("lang_unsupported")),
		validation.Field(&c.Name, required(partial, "name_required"), validation.RuneLength(0, maxName).Error("name_too_long")),
		validation.Field(&c.Description, required(partial, "description_required"), validation.RuneLength(0, maxText).Error("description_too_long")),
		validation.Field(&c.Location, validation.RuneLength(0, maxTitle).Error("location_too_long")),
		validation.Field(&c.Link, is.URL.Error("invalid_url"), validation.RuneLength(0, maxURL).Error("link_too_long")),
		validation.Field(&c.Image, validation.By(imageRef), validation.RuneLength(0, maxURL).Error("image_too_long")),
		validation.Field(&c.Contact, is.Email.Error("invalid_email_format")),
	)
	if err != nil {
		return content.Entity{}, asValidationError(err)
	}

	e := entity(c.Lang, content.Translation{
		"name":        c.Name,
		"description": c.Description,
	})
	setAttr(&e, "location", c.Location)
	setAttr(&e, "image", c.Image)
	setAttr(&e, "link", c.Link)
	setAttr(&e, "contact", c.Contact)
	return e, nil
}
