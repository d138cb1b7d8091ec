package meraki

import "encoding/json"

// The Dashboard API returns JSON null for string fields that downstream
// schema-checking clients expect to be strings, and null for tag lists that
// should be arrays. Normalization rewrites those fields explicitly, per
// payload shape, instead of disabling validation on the consumer side.

var networkStringFields = []string{"enrollmentString", "notes", "url", "timeZone", "name"}

var deviceStringFields = []string{
	"lanIp", "wan1Ip", "wan2Ip", "name", "notes", "address",
	"firmware", "mac", "model", "serial", "imei",
}

var upgradeStringFields = []string{"upgradeId", "upgradeBatchId", "status", "time", "completedAt"}

// NormalizeNetworks coerces null string fields and null tags in a network
// listing. Payloads that are not a JSON array pass through untouched.
func NormalizeNetworks(raw json.RawMessage) json.RawMessage {
	return normalizeList(raw, func(item map[string]any) {
		coerceStrings(item, networkStringFields)
		coerceTags(item)
	})
}

// NormalizeDevices coerces null string fields and null tags in a device
// listing.
func NormalizeDevices(raw json.RawMessage) json.RawMessage {
	return normalizeList(raw, func(item map[string]any) {
		coerceStrings(item, deviceStringFields)
		coerceTags(item)
	})
}

// NormalizeFirmwareUpgrades coerces null fields in a firmware upgrade
// listing, including the nested network and version objects.
func NormalizeFirmwareUpgrades(raw json.RawMessage) json.RawMessage {
	return normalizeList(raw, func(item map[string]any) {
		coerceStrings(item, upgradeStringFields)

		if network, ok := item["network"].(map[string]any); ok {
			coerceStrings(network, []string{"id", "name"})
		}
		for _, key := range []string{"fromVersion", "toVersion"} {
			if version, ok := item[key].(map[string]any); ok {
				coerceStrings(version, []string{"id", "firmware", "shortName"})
			}
		}
		if types, present := item["productTypes"]; present && types == nil {
			item["productTypes"] = []any{}
		}
	})
}

func normalizeList(raw json.RawMessage, fix func(map[string]any)) json.RawMessage {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return raw
	}
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			fix(m)
		}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return raw
	}
	return out
}

// coerceStrings replaces null with "" for the named fields, converting
// non-string scalars (the API occasionally emits numbers) to strings too.
func coerceStrings(m map[string]any, fields []string) {
	for _, f := range fields {
		v, present := m[f]
		if !present {
			continue
		}
		switch v.(type) {
		case nil:
			m[f] = ""
		case string:
		default:
			b, err := json.Marshal(v)
			if err == nil {
				m[f] = string(b)
			}
		}
	}
}

func coerceTags(m map[string]any) {
	if tags, present := m["tags"]; present && tags == nil {
		m["tags"] = []any{}
	}
}
