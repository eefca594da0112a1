/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/dualstore/registry"
)

// NewID returns a random identifier for collections keyed by caller-generated ids.
func NewID() string {
	return uuid.NewString()
}

// UsageExample is one example sentence of a dictionary entry.
type UsageExample struct {

	// The example sentence.
	// Required: true
	Sentence string `json:"sentence"`

	// English translation of the sentence.
	Translation string `json:"translation,omitempty"`
}

// DictionaryEntry is a word in the dictionary collection, keyed by Word.
type DictionaryEntry struct {

	// The headword. Stored lower-cased.
	// Required: true
	Word string `json:"word"`

	// Phonetic transcription.
	Phonetic string `json:"phonetic,omitempty"`

	// pronunciation note
	PronunciationNote string `json:"pronunciationNote,omitempty"`

	// part of speech
	PartOfSpeech string `json:"partOfSpeech,omitempty"`

	// definition english
	DefinitionEnglish string `json:"definitionEnglish,omitempty"`

	// definition standard
	DefinitionStandard string `json:"definitionStandard,omitempty"`

	// etymology
	Etymology string `json:"etymology,omitempty"`

	// Usage frequency rank.
	Frequency int `json:"frequency,omitempty"`

	// usage note
	UsageNote string `json:"usageNote,omitempty"`

	// synonyms
	Synonyms []string `json:"synonyms,omitempty"`

	// antonyms
	Antonyms []string `json:"antonyms,omitempty"`

	// examples
	Examples []UsageExample `json:"examples,omitempty"`

	// Review status, e.g. draft or approved.
	Status string `json:"status,omitempty"`

	// Where the entry came from.
	Source string `json:"source,omitempty"`

	// author Id
	AuthorID string `json:"authorId,omitempty"`

	// Timestamp of the last remote write.
	// Format: date-time
	LastSyncedAt *strfmt.DateTime `json:"lastSyncedAt,omitempty"`

	// Whether the user bookmarked the entry. Device-local.
	Bookmarked bool `json:"bookmarked,omitempty"`
}

// Collection returns registry.Dictionary.
func (DictionaryEntry) Collection() registry.Collection { return registry.Dictionary }

// DailyData is a cached payload for one calendar day.
type DailyData struct {

	// Unique identifier, usually the kind and the date.
	// Required: true
	ID string `json:"id"`

	// The day the payload belongs to.
	// Format: date
	Date strfmt.Date `json:"date"`

	// The cached payload.
	Data map[string]any `json:"data,omitempty"`
}

// Collection returns registry.DailyData.
func (DailyData) Collection() registry.Collection { return registry.DailyData }

// BlogPost is an article in the blog collection.
type BlogPost struct {

	// Unique identifier for the post.
	// Required: true
	ID string `json:"id"`

	// title
	Title string `json:"title,omitempty"`

	// excerpt
	Excerpt string `json:"excerpt,omitempty"`

	// content
	Content string `json:"content,omitempty"`

	// author
	Author string `json:"author,omitempty"`

	// Publication date.
	// Format: date
	Date strfmt.Date `json:"date,omitempty"`

	// Estimated reading time, e.g. "5 min".
	ReadTime string `json:"readTime,omitempty"`

	// tags
	Tags []string `json:"tags,omitempty"`

	// image Url
	ImageURL string `json:"imageUrl,omitempty"`
}

// Collection returns registry.Blog.
func (BlogPost) Collection() registry.Collection { return registry.Blog }

// Score is a game result.
type Score struct {

	// Unique identifier for the score.
	// Required: true
	ID string `json:"id"`

	// Player name.
	Name string `json:"name,omitempty"`

	// score
	Score int `json:"score"`

	// When the game was played.
	// Format: date-time
	Date strfmt.DateTime `json:"date,omitempty"`

	// Game mode.
	Mode string `json:"mode,omitempty"`
}

// Collection returns registry.Scores.
func (Score) Collection() registry.Collection { return registry.Scores }

// Transaction is a payment record.
type Transaction struct {

	// Unique identifier for the transaction.
	// Required: true
	ID string `json:"id"`

	// user Id
	UserID string `json:"userId,omitempty"`

	// user name
	UserName string `json:"userName,omitempty"`

	// Amount in the smallest currency unit.
	Amount int64 `json:"amount"`

	// Subscription tier.
	Tier string `json:"tier,omitempty"`

	// Payment method.
	Method string `json:"method,omitempty"`

	// timestamp
	// Format: date-time
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

// Collection returns registry.Transactions.
func (Transaction) Collection() registry.Collection { return registry.Transactions }

// GlossaryTerm is a device-local grammar term.
type GlossaryTerm struct {

	// Required: true
	ID string `json:"id"`

	// term
	Term string `json:"term,omitempty"`

	// definition
	Definition string `json:"definition,omitempty"`

	// category
	Category string `json:"category,omitempty"`
}

// Collection returns registry.Glossary.
func (GlossaryTerm) Collection() registry.Collection { return registry.Glossary }

// Product is a device-local shop item.
type Product struct {

	// Required: true
	ID string `json:"id"`

	// name
	Name string `json:"name,omitempty"`

	// description
	Description string `json:"description,omitempty"`

	// Price in the smallest currency unit.
	Price int64 `json:"price"`

	// image Url
	ImageURL string `json:"imageUrl,omitempty"`
}

// Collection returns registry.Products.
func (Product) Collection() registry.Collection { return registry.Products }

// AuditLog is a device-local record of an administrative action.
type AuditLog struct {

	// Required: true
	ID string `json:"id"`

	// Who performed the action.
	Actor string `json:"actor,omitempty"`

	// action
	Action string `json:"action,omitempty"`

	// What the action touched.
	Target string `json:"target,omitempty"`

	// created at
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"createdAt"`
}

// Collection returns registry.AuditLogs.
func (AuditLog) Collection() registry.Collection { return registry.AuditLogs }

// AlphabetLetter is a letter of the alphabet, keyed by Letter.
type AlphabetLetter struct {

	// Required: true
	Letter string `json:"letter"`

	// pronunciation
	Pronunciation string `json:"pronunciation,omitempty"`

	// Example word starting with the letter.
	Example string `json:"example,omitempty"`
}

// Collection returns registry.Alphabet.
func (AlphabetLetter) Collection() registry.Collection { return registry.Alphabet }
