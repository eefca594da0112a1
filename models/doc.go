/*
Package models defines typed records for the declared collections.

JSON tags use the application naming (definitionEnglish, imageUrl). The sync
layer translates them to storage naming only when a record is sent to the
remote store. Each model reports the collection it belongs to:

	entry := models.DictionaryEntry{Word: "shpi", DefinitionEnglish: "house"}
	entry.Collection() // registry.Dictionary

Dates and timestamps use strfmt.Date and strfmt.DateTime.
*/
package models
