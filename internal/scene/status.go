package scene

import (
	"math"

	"github.com/alexanderramin/sitemap/internal/domain"
)

// SetDeviceStatus records a node's installation status. Evidence is kept
// only for installed and cannot_install; other statuses drop it. Material
// quantities that are negative, NaN or infinite are discarded.
func (s *Store) SetDeviceStatus(id string, status domain.InstallStatus, ev *domain.Evidence) bool {
	i := s.nodeIndex(id)
	if i < 0 || !domain.ValidInstallStatuses[status] {
		return false
	}
	s.track()
	s.nodes[i].Status = status
	s.nodes[i].Evidence = evidenceFor(status, ev)
	return true
}

// SetCableStatus is SetDeviceStatus for cables.
func (s *Store) SetCableStatus(id string, status domain.InstallStatus, ev *domain.Evidence) bool {
	i := s.cableIndex(id)
	if i < 0 || !domain.ValidInstallStatuses[status] {
		return false
	}
	s.track()
	s.cables[i].Status = status
	s.cables[i].Evidence = evidenceFor(status, ev)
	return true
}

func evidenceFor(status domain.InstallStatus, ev *domain.Evidence) *domain.Evidence {
	if !status.CarriesEvidence() {
		return nil
	}
	c := ev.Clone()
	if c == nil {
		return nil
	}
	for name, qty := range c.Materials {
		if math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
			delete(c.Materials, name)
		}
	}
	if len(c.Materials) == 0 {
		c.Materials = nil
	}
	return c
}

// StatusCounts tallies nodes by installation status.
func (s *Store) StatusCounts() map[domain.InstallStatus]int {
	counts := make(map[domain.InstallStatus]int)
	for _, n := range s.nodes {
		counts[n.Status]++
	}
	return counts
}
