package catalog

import "github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"

// Predicate is a single menu filter. Filter applies predicates
// conjunctively, which keeps ad hoc UI filter combinations out of
// nested conditionals.
type Predicate func(models.MenuItem) bool

func ByCategory(category string) Predicate {
	return func(item models.MenuItem) bool {
		return item.Category == category
	}
}

// MaxSpice keeps items at or below the given heat.
func MaxSpice(level models.SpiceLevel) Predicate {
	return func(item models.MenuItem) bool {
		return item.SpiceLevel <= level
	}
}

func PopularOnly() Predicate {
	return func(item models.MenuItem) bool {
		return item.Popular
	}
}

func CustomizableOnly() Predicate {
	return func(item models.MenuItem) bool {
		return item.Customizable
	}
}

func ByDietary(tag string) Predicate {
	return func(item models.MenuItem) bool {
		return item.HasDietaryTag(tag)
	}
}

func MaxPrice(price int) Predicate {
	return func(item models.MenuItem) bool {
		return item.Price <= price
	}
}

// Filter returns, in catalog order, the items that satisfy every
// predicate. No predicates returns the whole menu.
func (c *Catalog) Filter(preds ...Predicate) []models.MenuItem {
	var matched []models.MenuItem
	for _, item := range c.items {
		ok := true
		for _, pred := range preds {
			if !pred(item) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched
}
