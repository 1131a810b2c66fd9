package game

import "golang.org/x/exp/slices"

// Map represents the game map, containing all the regions and super regions.
type Map struct {
	regions        map[int]*Region      // Maps region IDs to Region pointers
	superRegions   map[int]*SuperRegion // Maps super region IDs to SuperRegion pointers
	regionIDs      []int                // Insertion order, for deterministic iteration
	superRegionIDs []int
}

// NewMap creates and returns a new Map instance.
func NewMap() *Map {
	return &Map{
		regions:      make(map[int]*Region),
		superRegions: make(map[int]*SuperRegion),
	}
}

// AddSuperRegion adds a new super region to the map, replacing one with the same ID.
func (m *Map) AddSuperRegion(sr *SuperRegion) {
	if _, ok := m.superRegions[sr.ID]; !ok {
		m.superRegionIDs = append(m.superRegionIDs, sr.ID)
	}
	m.superRegions[sr.ID] = sr
}

// AddRegion adds a new region to the map.
func (m *Map) AddRegion(r *Region) {
	if _, ok := m.regions[r.ID]; !ok {
		m.regionIDs = append(m.regionIDs, r.ID)
	}
	m.regions[r.ID] = r
}

// AddNeighbor adds a bidirectional border between two regions. Unknown ids are ignored.
func (m *Map) AddNeighbor(id1, id2 int) {
	r1, ok1 := m.regions[id1]
	r2, ok2 := m.regions[id2]
	if !ok1 || !ok2 || id1 == id2 {
		return
	}
	r1.addNeighbor(id2)
	r2.addNeighbor(id1)
}

// Region returns the region with the given id, or nil.
func (m *Map) Region(id int) *Region {
	return m.regions[id]
}

// SuperRegion returns the super region with the given id, or nil.
func (m *Map) SuperRegion(id int) *SuperRegion {
	return m.superRegions[id]
}

// Regions returns the regions of this map in insertion order.
func (m *Map) Regions() []*Region {
	regions := make([]*Region, 0, len(m.regionIDs))
	for _, id := range m.regionIDs {
		regions = append(regions, m.regions[id])
	}
	return regions
}

// SuperRegions returns the super regions of this map in insertion order.
func (m *Map) SuperRegions() []*SuperRegion {
	superRegions := make([]*SuperRegion, 0, len(m.superRegionIDs))
	for _, id := range m.superRegionIDs {
		superRegions = append(superRegions, m.superRegions[id])
	}
	return superRegions
}

// Prune drops every region matching pred from this map's iteration and lookup.
// Super region membership is left alone, so values still see the whole super region.
func (m *Map) Prune(pred func(*Region) bool) {
	kept := m.regionIDs[:0]
	for _, id := range m.regionIDs {
		if pred(m.regions[id]) {
			delete(m.regions, id)
			continue
		}
		kept = append(kept, id)
	}
	m.regionIDs = kept
}

// Copy returns a deep copy of the map: new super regions and regions with the
// same ids, borders, owners and armies. Transient fields start fresh.
func (m *Map) Copy() *Map {
	c := NewMap()
	for _, id := range m.superRegionIDs {
		sr := m.superRegions[id]
		c.AddSuperRegion(NewSuperRegion(sr.ID, sr.Reward))
	}
	for _, id := range m.regionIDs {
		r := m.regions[id]
		nr := NewRegion(r.ID, c.superRegions[r.SuperRegion.ID])
		nr.Owner = r.Owner
		nr.Armies = r.Armies
		nr.neighbors = slices.Clone(r.neighbors)
		c.AddRegion(nr)
	}
	return c
}
