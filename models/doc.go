// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

All JSON uses camelCase keys.

# Request Types

Types for parsing incoming JSON:

  - CreateEventRequest: topic, creatorName
  - UpdateEventRequest: topic, date, time, location (absent fields untouched)
  - SetStatusRequest: status
  - SaveMenuRequest: menuData
  - AddVoterRequest: name
  - SubmitVoteRequest: eventId, sheetName, voterName, selections

# Response Types

Types for JSON responses:

  - EventResponse, StatusResponse, MenuResponse, VotersResponse, MessageResponse
  - ResultsResponse: sheet, totalVotes, tally, votersByItem, votesList, categories
  - VoterVotesResponse: votes, submittedAt, submittedAgo per sheet
  - ErrorResponse: error, message, violations

# Domain Types

  - Event: topic, schedule, status, menu and allowed voters
  - Menu: ordered sheets; encodes as a JSON object that keeps sheet order
  - Sheet, Category: a category has a quota and its items
  - Vote: one voter's selections on one sheet
  - Tally: counts and voter names per item
  - CategoryResult, RankedItem: ranked items with winner/tied/none classification
  - Violation: one quota or menu validation failure

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Classifications:

	ClassWinner = "winner"
	ClassTied   = "tied"
	ClassNone   = "none"
*/
package models
