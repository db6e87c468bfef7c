package catalog

import "log"

// Service exposes the four operations behind the HTTP routes.
type Service struct {
	catalog *Catalog
}

// NewService creates a service over the given catalog. A nil catalog means
// the default one.
func NewService(c *Catalog) *Service {
	if c == nil {
		c = New()
	}
	return &Service{catalog: c}
}

// Catalog returns the catalog the service reads from.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// GetCallObject looks an item up by title. It returns nil when nothing
// matches.
func (s *Service) GetCallObject(query string) *Item {
	item, ok := s.catalog.Find(query)
	if !ok {
		log.Printf("[CATALOG] lookup miss query=%q", query)
		return nil
	}
	return &item
}

// GetCallList returns every item.
func (s *Service) GetCallList() ItemList {
	return s.catalog.List()
}

// PostCall logs the request body and answers with the lookup for query.
func (s *Service) PostCall(query string, req UserRequest) *Item {
	log.Printf("[CATALOG] post-call query=%q username=%q password=%q", query, req.Username, req.Password)
	return s.GetCallObject(query)
}

// ExchangeCall logs the token and body and returns the full list. The token
// is not checked.
func (s *Service) ExchangeCall(token string, req UserRequest) ItemList {
	log.Printf("[CATALOG] exchange-call token=%q username=%q password=%q", token, req.Username, req.Password)
	return s.GetCallList()
}
