package scene

import "github.com/alexanderramin/sitemap/internal/domain"

// DevicesInRack returns the nodes whose ParentRackID is rackID. Membership
// is derived on every call; racks keep no children list.
func (s *Store) DevicesInRack(rackID string) []domain.DeviceNode {
	if rackID == "" {
		return nil
	}
	var out []domain.DeviceNode
	for _, n := range s.nodes {
		if n.ParentRackID == rackID && n.ID != rackID {
			out = append(out, n.Clone())
		}
	}
	return out
}

// AddDeviceToRack puts a device into a rack. Racks cannot be nested, and a
// device that already sits in another rack must be removed from it first.
func (s *Store) AddDeviceToRack(deviceID, rackID string) bool {
	if deviceID == rackID {
		return false
	}
	di, ri := s.nodeIndex(deviceID), s.nodeIndex(rackID)
	if di < 0 || ri < 0 {
		return false
	}
	dev, rack := s.nodes[di], s.nodes[ri]
	if !rack.Type.IsRack() || dev.Type.IsRack() || dev.ParentRackID != "" {
		return false
	}
	s.track()
	s.nodes[di].ParentRackID = rackID
	return true
}

// RemoveDeviceFromRack clears a device's rack membership.
func (s *Store) RemoveDeviceFromRack(deviceID string) bool {
	i := s.nodeIndex(deviceID)
	if i < 0 || s.nodes[i].ParentRackID == "" {
		return false
	}
	s.track()
	s.nodes[i].ParentRackID = ""
	return true
}

// RackOf returns the rack containing deviceID, if any.
func (s *Store) RackOf(deviceID string) (domain.DeviceNode, bool) {
	i := s.nodeIndex(deviceID)
	if i < 0 || s.nodes[i].ParentRackID == "" {
		return domain.DeviceNode{}, false
	}
	return s.Node(s.nodes[i].ParentRackID)
}
