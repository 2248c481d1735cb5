package reconciler

import "fmt"

// Texts the bot posts into chats. The deployment audience is Russian-speaking.
const welcomeMessage = "Добрый день, я бот-консьерж. Я не читаю ваши сообщения и проверяю только наличие пользователей. Спишите мне пару слов"

func kickNotification(name string) string {
	return fmt.Sprintf("Пользователь %s был удалён из чата (ботом)", name)
}
