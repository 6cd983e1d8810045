package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/sha1n/gdoc-comments/internal/domain"
)

// Bleve field names of indexed comments.
const (
	FieldDocumentID = "document_id"
	FieldCommentID  = "comment_id"
	FieldAuthor     = "author"
	FieldText       = "text"
	FieldExcerpt    = "excerpt"
	FieldReplies    = "replies"
	FieldLine       = "line"
	FieldResolved   = "resolved"
)

// textBoost favors matches in the comment body over excerpt and replies.
const textBoost = 2.0

// CommentDocument is the indexed form of an enriched comment.
type CommentDocument struct {
	DocumentID string  `json:"document_id"`
	CommentID  string  `json:"comment_id"`
	Author     string  `json:"author"`
	Text       string  `json:"text"`
	Excerpt    string  `json:"excerpt"`
	Replies    string  `json:"replies"`
	Line       float64 `json:"line"`
	Resolved   bool    `json:"resolved"`
}

// NewCommentDocument flattens a comment and its non-blank replies.
func NewCommentDocument(documentID string, c domain.EnrichedComment) CommentDocument {
	var replies []string
	for _, r := range c.Replies {
		if text := strings.TrimSpace(r.Text); text != "" {
			replies = append(replies, r.Author+": "+text)
		}
	}

	return CommentDocument{
		DocumentID: documentID,
		CommentID:  c.ID,
		Author:     c.Author,
		Text:       c.Text,
		Excerpt:    c.Excerpt(),
		Replies:    strings.Join(replies, "\n"),
		Line:       float64(c.LineNumber),
		Resolved:   c.Resolved,
	}
}

// CreateIndexMapping creates the Bleve index mapping for comment documents.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	for _, name := range []string{FieldText, FieldExcerpt, FieldReplies, FieldAuthor} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = true
		f.IncludeTermVectors = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	for _, name := range []string{FieldDocumentID, FieldCommentID} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	lineField := bleve.NewNumericFieldMapping()
	lineField.Store = true
	docMapping.AddFieldMappingsAt(FieldLine, lineField)

	resolvedField := bleve.NewBooleanFieldMapping()
	resolvedField.Store = true
	docMapping.AddFieldMappingsAt(FieldResolved, resolvedField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// Index is an in-memory full-text index of document comments.
type Index struct {
	index      bleve.Index
	maxResults int
}

// Query describes a comment search.
type Query struct {
	Text       string
	DocumentID string
	Resolved   *bool
}

// Hit is a single matching comment.
type Hit struct {
	CommentID string
	Author    string
	Excerpt   string
	Line      int
	Resolved  bool
	Score     float64
	Fragments []string
}

// Results are the hits of a search, best first.
type Results struct {
	Total uint64
	Hits  []Hit
}

// NewIndex creates an empty in-memory index returning at most maxResults
// hits per search.
func NewIndex(maxResults int) (*Index, error) {
	idx, err := bleve.NewMemOnly(CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &Index{
		index:      idx,
		maxResults: maxResults,
	}, nil
}

// Add indexes the comments of a document.
func (i *Index) Add(documentID string, comments []domain.EnrichedComment) error {
	batch := i.index.NewBatch()
	for _, c := range comments {
		if err := batch.Index(documentID+"/"+c.ID, NewCommentDocument(documentID, c)); err != nil {
			return fmt.Errorf("failed to index comment %s: %w", c.ID, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index comments: %w", err)
	}
	return nil
}

// Count returns the number of indexed comments.
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Search runs q against the index.
func (i *Index) Search(q Query) (*Results, error) {
	req := bleve.NewSearchRequest(buildQuery(q))
	req.Size = i.maxResults
	req.Fields = []string{FieldCommentID, FieldAuthor, FieldExcerpt, FieldLine, FieldResolved}
	req.Highlight = bleve.NewHighlight()
	req.Highlight.AddField(FieldText)
	req.Highlight.AddField(FieldReplies)

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := &Results{Total: res.Total}
	for _, h := range res.Hits {
		results.Hits = append(results.Hits, toHit(h.Score, h.Fields, h.Fragments))
	}
	return results, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// buildQuery constructs a Bleve query from search arguments.
func buildQuery(q Query) query.Query {
	textQuery := bleve.NewMatchQuery(q.Text)
	textQuery.SetField(FieldText)
	textQuery.SetBoost(textBoost)

	excerptQuery := bleve.NewMatchQuery(q.Text)
	excerptQuery.SetField(FieldExcerpt)

	repliesQuery := bleve.NewMatchQuery(q.Text)
	repliesQuery.SetField(FieldReplies)

	authorQuery := bleve.NewMatchQuery(q.Text)
	authorQuery.SetField(FieldAuthor)

	searchQuery := bleve.NewDisjunctionQuery(textQuery, excerptQuery, repliesQuery, authorQuery)

	if q.DocumentID == "" && q.Resolved == nil {
		return searchQuery
	}

	must := []query.Query{searchQuery}

	if q.DocumentID != "" {
		docQuery := bleve.NewTermQuery(q.DocumentID)
		docQuery.SetField(FieldDocumentID)
		must = append(must, docQuery)
	}

	if q.Resolved != nil {
		resolvedQuery := bleve.NewBoolFieldQuery(*q.Resolved)
		resolvedQuery.SetField(FieldResolved)
		must = append(must, resolvedQuery)
	}

	return bleve.NewConjunctionQuery(must...)
}

func toHit(score float64, fields map[string]interface{}, fragments map[string][]string) Hit {
	hit := Hit{Score: score}
	if v, ok := fields[FieldCommentID].(string); ok {
		hit.CommentID = v
	}
	if v, ok := fields[FieldAuthor].(string); ok {
		hit.Author = v
	}
	if v, ok := fields[FieldExcerpt].(string); ok {
		hit.Excerpt = v
	}
	if v, ok := fields[FieldLine].(float64); ok {
		hit.Line = int(v)
	}
	if v, ok := fields[FieldResolved].(bool); ok {
		hit.Resolved = v
	}
	for _, field := range []string{FieldText, FieldReplies} {
		hit.Fragments = append(hit.Fragments, fragments[field]...)
	}
	return hit
}
