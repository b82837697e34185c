// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

// CachedTagLists returns how many category tag lists service has cached.
func CachedTagLists(service *Service) int {
	service.tagsMu.Lock()
	defer service.tagsMu.Unlock()
	return len(service.tags)
}
