package orders

import "strconv"

const TopicOrderPlaced = "order.placed"

// Partition key = order id, so all events for one order keep their order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
